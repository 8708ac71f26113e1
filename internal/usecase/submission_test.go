package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Ravularamesh74/Job-Portal/internal/domain"
	"github.com/Ravularamesh74/Job-Portal/internal/usecase"
	"github.com/Ravularamesh74/Job-Portal/pkg/apperror"
	"github.com/Ravularamesh74/Job-Portal/pkg/security"
	"github.com/Ravularamesh74/Job-Portal/pkg/validation"
)

// Mock Sinks
type MockSubmissionSink struct {
	mock.Mock
}

func (m *MockSubmissionSink) CreateApplication(ctx context.Context, token string, app *domain.FinalizedApplication) (*domain.SubmissionReceipt, error) {
	args := m.Called(ctx, token, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionReceipt), args.Error(1)
}

func strPtr(s string) *string { return &s }

func pdfResume() domain.AttachmentRef {
	return domain.AttachmentRef{
		Filename:  "resume.pdf",
		ByteSize:  2 * 1024 * 1024,
		MediaType: "application/pdf",
		Raw:       []byte("%PDF-1.4"),
	}
}

func fillValidDraft(t *testing.T, m *usecase.SubmissionMachine) {
	t.Helper()
	err := m.UpdateFields(domain.DraftPatch{
		FirstName:   strPtr("Jane"),
		LastName:    strPtr("Doe"),
		Email:       strPtr("jane@x.com"),
		CoverLetter: strPtr(strings.Repeat("a", 60)),
	})
	assert.NoError(t, err)
	assert.NoError(t, m.AttachResume(pdfResume()))
}

func TestSubmitHappyPath(t *testing.T) {
	sink := new(MockSubmissionSink)
	m := usecase.NewSubmissionMachine("job-1", sink)
	fillValidDraft(t, m)

	identity := &domain.Identity{UserID: "user-7", Email: "jane@x.com", Token: "tok"}
	sink.On("CreateApplication", mock.Anything, "tok", mock.MatchedBy(func(app *domain.FinalizedApplication) bool {
		return app.JobID == "job-1" &&
			app.CandidateID == "user-7" &&
			app.Email == "jane@x.com" &&
			app.Resume != nil && app.Resume.Filename == "resume.pdf"
	})).Return(&domain.SubmissionReceipt{ID: "app-1", Status: "Pending"}, nil).Once()

	result, err := m.Submit(context.Background(), identity)

	assert.NoError(t, err)
	assert.Equal(t, domain.SubmissionStateSubmitted, result.State)
	assert.Equal(t, "app-1", result.Receipt.ID)
	assert.Equal(t, "Pending", result.Receipt.Status)

	// Terminal state cleared the draft.
	draft, state := m.Snapshot()
	assert.Equal(t, domain.SubmissionStateSubmitted, state)
	assert.Equal(t, domain.ApplicationDraft{}, draft)
	sink.AssertExpectations(t)
}

func TestSubmitWithoutIdentityMarksGuest(t *testing.T) {
	sink := new(MockSubmissionSink)
	m := usecase.NewSubmissionMachine("job-1", sink)
	fillValidDraft(t, m)

	sink.On("CreateApplication", mock.Anything, "", mock.MatchedBy(func(app *domain.FinalizedApplication) bool {
		return app.CandidateID == domain.GuestCandidateID
	})).Return(&domain.SubmissionReceipt{ID: "app-2", Status: "Pending"}, nil).Once()

	result, err := m.Submit(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, domain.SubmissionStateSubmitted, result.State)
	sink.AssertExpectations(t)
}

func TestSubmitValidationFailureNeverReachesSink(t *testing.T) {
	sink := new(MockSubmissionSink)
	m := usecase.NewSubmissionMachine("job-1", sink)
	fillValidDraft(t, m)
	assert.NoError(t, m.UpdateFields(domain.DraftPatch{Email: strPtr("not-an-email")}))

	result, err := m.Submit(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, domain.SubmissionStateEditing, result.State)
	assert.Equal(t, map[string]string{"email": "Enter a valid email address."}, result.FieldErrors)
	assert.Equal(t, domain.SubmissionStateEditing, m.State())
	sink.AssertNotCalled(t, "CreateApplication", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitRequiresResume(t *testing.T) {
	sink := new(MockSubmissionSink)
	m := usecase.NewSubmissionMachine("job-1", sink)
	fillValidDraft(t, m)
	assert.NoError(t, m.RemoveResume())

	result, err := m.Submit(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, validation.MsgResumeRequired, result.FieldErrors["resume"])
	sink.AssertNotCalled(t, "CreateApplication", mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachResumeRejectsAtTheGate(t *testing.T) {
	sink := new(MockSubmissionSink)
	m := usecase.NewSubmissionMachine("job-1", sink)

	t.Run("unsupported type never attaches", func(t *testing.T) {
		err := m.AttachResume(domain.AttachmentRef{
			Filename:  "photo.png",
			ByteSize:  1024,
			MediaType: "image/png",
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, security.MsgUnsupportedFormat, appErr.Message)

		draft, _ := m.Snapshot()
		assert.Nil(t, draft.Resume)
	})

	t.Run("oversized file never attaches", func(t *testing.T) {
		err := m.AttachResume(domain.AttachmentRef{
			Filename:  "big.pdf",
			ByteSize:  security.MaxResumeBytes + 1,
			MediaType: "application/pdf",
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, security.MsgFileTooLarge, appErr.Message)
	})

	t.Run("rejection keeps the previous attachment", func(t *testing.T) {
		assert.NoError(t, m.AttachResume(pdfResume()))
		_ = m.AttachResume(domain.AttachmentRef{Filename: "photo.png", MediaType: "image/png"})

		draft, _ := m.Snapshot()
		assert.NotNil(t, draft.Resume)
		assert.Equal(t, "resume.pdf", draft.Resume.Filename)
	})
}

func TestSubmitSinkFailurePreservesDraftForRetry(t *testing.T) {
	sink := new(MockSubmissionSink)
	m := usecase.NewSubmissionMachine("job-1", sink)
	fillValidDraft(t, m)

	sink.On("CreateApplication", mock.Anything, "", mock.Anything).
		Return(nil, errors.New("upstream unreachable")).Once()
	sink.On("CreateApplication", mock.Anything, "", mock.Anything).
		Return(&domain.SubmissionReceipt{ID: "app-3", Status: "Pending"}, nil).Once()

	_, err := m.Submit(context.Background(), nil)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.Recoverable)
	assert.Equal(t, domain.SubmissionStateFailed, m.State())

	// Every field value and the attachment survive the failure verbatim.
	draft, _ := m.Snapshot()
	assert.Equal(t, "Jane", draft.FirstName)
	assert.Equal(t, "jane@x.com", draft.Email)
	assert.NotNil(t, draft.Resume)

	// Retrying the same draft succeeds without re-entering data.
	result, err := m.Submit(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, domain.SubmissionStateSubmitted, result.State)
	sink.AssertExpectations(t)
}

func TestSubmitAuthFailureMapsToUnauthorized(t *testing.T) {
	sink := new(MockSubmissionSink)
	m := usecase.NewSubmissionMachine("job-1", sink)
	fillValidDraft(t, m)

	sink.On("CreateApplication", mock.Anything, "expired", mock.Anything).
		Return(nil, &domain.SinkError{StatusCode: 401, Message: "token expired"}).Once()

	_, err := m.Submit(context.Background(), &domain.Identity{UserID: "u", Token: "expired"})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Code)
	assert.False(t, appErr.Recoverable)
	sink.AssertExpectations(t)
}

func TestSubmittedIsTerminal(t *testing.T) {
	sink := new(MockSubmissionSink)
	m := usecase.NewSubmissionMachine("job-1", sink)
	fillValidDraft(t, m)

	sink.On("CreateApplication", mock.Anything, "", mock.Anything).
		Return(&domain.SubmissionReceipt{ID: "app-4", Status: "Pending"}, nil).Once()
	_, err := m.Submit(context.Background(), nil)
	assert.NoError(t, err)

	t.Run("second submit conflicts", func(t *testing.T) {
		_, err := m.Submit(context.Background(), nil)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})

	t.Run("edits conflict", func(t *testing.T) {
		err := m.UpdateFields(domain.DraftPatch{FirstName: strPtr("Janet")})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})

	t.Run("reset starts a fresh draft", func(t *testing.T) {
		m.Reset()
		assert.Equal(t, domain.SubmissionStateEditing, m.State())
		assert.NoError(t, m.UpdateFields(domain.DraftPatch{FirstName: strPtr("Janet")}))
	})

	sink.AssertNumberOfCalls(t, "CreateApplication", 1)
}

func TestSubmitSingleFlight(t *testing.T) {
	sink := new(MockSubmissionSink)
	m := usecase.NewSubmissionMachine("job-1", sink)
	fillValidDraft(t, m)

	entered := make(chan struct{})
	release := make(chan struct{})
	sink.On("CreateApplication", mock.Anything, "", mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(&domain.SubmissionReceipt{ID: "app-5", Status: "Pending"}, nil).Once()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		result, err := m.Submit(context.Background(), nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.SubmissionStateSubmitted, result.State)
	}()

	<-entered

	// A second submit while the first is in flight is a no-op; the
	// in-flight attempt wins.
	result, err := m.Submit(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, domain.SubmissionStateSubmitting, result.State)
	assert.Nil(t, result.Receipt)

	// Edits are rejected while in flight.
	editErr := m.UpdateFields(domain.DraftPatch{FirstName: strPtr("Janet")})
	var appErr *apperror.AppError
	assert.ErrorAs(t, editErr, &appErr)
	assert.Equal(t, 409, appErr.Code)

	close(release)
	wg.Wait()

	sink.AssertNumberOfCalls(t, "CreateApplication", 1)
}
