package impl

import (
	"context"
	"testing"

	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/domain/repository"
	mockRepo "aevum/internal/mocks/repository"
	mockSvc "aevum/internal/mocks/service"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// companionServiceFixtures holds all test dependencies for companion tests.
type companionServiceFixtures struct {
	service        usecase.CompanionUsecase
	companionRepo  *mockRepo.MockCompanionRepository
	replyGenerator *mockSvc.MockReplyGenerator
}

func createTestCompanionService(t *testing.T) companionServiceFixtures {
	companionRepo := mockRepo.NewMockCompanionRepository(t)
	replyGenerator := mockSvc.NewMockReplyGenerator(t)

	svc := NewCompanionService(CompanionServiceParams{
		CompanionRepo:  companionRepo,
		ReplyGenerator: replyGenerator,
		Config:         newTestConfig(0),
		Logger:         newDiscardLogger(),
	})

	return companionServiceFixtures{
		service:        svc,
		companionRepo:  companionRepo,
		replyGenerator: replyGenerator,
	}
}

func TestCompanionService_CreateThread_InvalidPersona(t *testing.T) {
	fx := createTestCompanionService(t)

	thread, err := fx.service.CreateThread(context.Background(), uuid.New(), &usecase.CreateThreadInput{
		Persona: "astrologer",
	})

	assert.Nil(t, thread)
	requireErrorCode(t, err, "PERSONA_INVALID")
}

func TestCompanionService_CreateThread_DefaultTitle(t *testing.T) {
	fx := createTestCompanionService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.companionRepo.On("CreateThread", ctx, mock.AnythingOfType("*entity.CompanionThread")).
		Run(func(args mock.Arguments) {
			thread := args.Get(1).(*entity.CompanionThread)
			thread.ID = uuid.New()
		}).
		Return(nil)

	thread, err := fx.service.CreateThread(ctx, userID, &usecase.CreateThreadInput{
		Persona: entity.PersonaCoach,
		Title:   "   ",
	})

	require.NoError(t, err)
	assert.Equal(t, "New conversation", thread.Title)
	assert.Equal(t, entity.PersonaCoach, thread.Persona)
}

func TestCompanionService_GetThread_CrossUserHidden(t *testing.T) {
	fx := createTestCompanionService(t)

	ctx := context.Background()
	threadID := uuid.New()

	fx.companionRepo.On("FindThreadWithMessages", ctx, threadID).
		Return(&entity.CompanionThread{ID: threadID, UserID: uuid.New()}, nil)

	thread, err := fx.service.GetThread(ctx, uuid.New(), threadID)

	assert.Nil(t, thread)
	assert.ErrorIs(t, err, domainerrors.ErrThreadNotFound)
}

func TestCompanionService_DeleteThread_NotFound(t *testing.T) {
	fx := createTestCompanionService(t)

	ctx := context.Background()
	threadID := uuid.New()

	fx.companionRepo.On("FindThreadByID", ctx, threadID).
		Return(nil, repository.ErrThreadNotFound)

	err := fx.service.DeleteThread(ctx, uuid.New(), threadID)

	assert.ErrorIs(t, err, domainerrors.ErrThreadNotFound)
	fx.companionRepo.AssertNotCalled(t, "DeleteThread", mock.Anything, mock.Anything)
}

func TestCompanionService_SendMessage_EmptyContent(t *testing.T) {
	fx := createTestCompanionService(t)

	output, err := fx.service.SendMessage(context.Background(), uuid.New(), uuid.New(), &usecase.SendMessageInput{
		Content: "   ",
	})

	assert.Nil(t, output)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestCompanionService_SendMessage_Success(t *testing.T) {
	fx := createTestCompanionService(t)

	ctx := context.Background()
	userID := uuid.New()
	threadID := uuid.New()
	history := []*entity.CompanionMessage{
		{ThreadID: threadID, Sender: entity.SenderUser, Content: "Hi", Sequence: 1},
		{ThreadID: threadID, Sender: entity.SenderAssistant, Content: "Hello! How can I help?", Sequence: 2},
	}

	fx.companionRepo.On("FindThreadByID", ctx, threadID).
		Return(&entity.CompanionThread{ID: threadID, UserID: userID, Persona: entity.PersonaCoach}, nil)
	// The generator sees the conversation as it was before this message.
	fx.companionRepo.On("ListRecentMessages", ctx, threadID, 20).Return(history, nil)

	fx.companionRepo.On("AppendMessage", ctx, mock.MatchedBy(func(m *entity.CompanionMessage) bool {
		return m.Sender == entity.SenderUser && m.Content == "How do I improve my sleep?"
	})).Return(nil).Once()

	fx.replyGenerator.On("GenerateReply", ctx, entity.PersonaCoach, history, "How do I improve my sleep?").
		Return("Start with a consistent bedtime.", nil)

	fx.companionRepo.On("AppendMessage", ctx, mock.MatchedBy(func(m *entity.CompanionMessage) bool {
		return m.Sender == entity.SenderAssistant && m.Content == "Start with a consistent bedtime."
	})).Return(nil).Once()

	output, err := fx.service.SendMessage(ctx, userID, threadID, &usecase.SendMessageInput{
		Content: "How do I improve my sleep?",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.SenderUser, output.UserMessage.Sender)
	assert.Equal(t, entity.SenderAssistant, output.AssistantMessage.Sender)
	assert.Equal(t, "Start with a consistent bedtime.", output.AssistantMessage.Content)
}

func TestCompanionService_SendMessage_ThreadNotOwned(t *testing.T) {
	fx := createTestCompanionService(t)

	ctx := context.Background()
	threadID := uuid.New()

	fx.companionRepo.On("FindThreadByID", ctx, threadID).
		Return(&entity.CompanionThread{ID: threadID, UserID: uuid.New(), Persona: entity.PersonaListener}, nil)

	output, err := fx.service.SendMessage(ctx, uuid.New(), threadID, &usecase.SendMessageInput{
		Content: "Hello",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrThreadNotFound)
}
