package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"mehfil/config"
	"mehfil/infras/otel/mocks"
	expMocks "mehfil/internal/domains/experience/mocks"
	feedbackMocks "mehfil/internal/domains/feedback/mocks"
	"mehfil/internal/domains/feedback/model"
	"mehfil/internal/domains/feedback/model/dto"
	"mehfil/internal/domains/feedback/service"
	cacheMocks "mehfil/shared/cache/mocks"
	gDto "mehfil/shared/dto"
	"mehfil/shared/failure"
	"mehfil/shared/timezone"
)

// waitBackground blocks until every expectation registered on the wait group
// has fired, so the fire-and-forget cache goroutines are done before the
// subtest asserts.
func waitBackground(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()

	done := make(chan struct{})

	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("background goroutines did not finish")
	}
}

func TestFeedbackService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := feedbackMocks.NewMockFeedback(ctrl)
	mockExpRepo := expMocks.NewMockExperience(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockExpRepo, cfg, mockCache, mockOtel)

	req := dto.CreateFeedbackRequest{
		ExperienceID:   "b3f1d2fa-3c5e-4a16-9c4e-6d9d4a5b6c7d",
		Name:           "Asha Rao",
		Email:          "asha@example.com",
		OverallRating:  model.RatingExcellent,
		EnjoyedMost:    []string{"Music", "Ambience"},
		WouldRecommend: true,
		Comments:       "Lovely evening.",
	}

	tests := []struct {
		name      string
		setupMock func(wg *sync.WaitGroup)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful feedback creation",
			setupMock: func(wg *sync.WaitGroup) {
				wg.Add(1)

				mockExpRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Do(func(context.Context, string) { wg.Done() }).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "experience not found",
			setupMock: func(wg *sync.WaitGroup) {
				mockExpRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "repository error",
			setupMock: func(wg *sync.WaitGroup) {
				mockExpRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wg := &sync.WaitGroup{}
			tt.setupMock(wg)

			ctx := context.Background()
			err := svc.Create(ctx, req)

			waitBackground(t, wg)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFeedbackService_GetByExperience(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := feedbackMocks.NewMockFeedback(ctrl)
	mockExpRepo := expMocks.NewMockExperience(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockExpRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		setupMock func(wg *sync.WaitGroup)
		wantErr   bool
		wantTotal int
	}{
		{
			name: "cache hit",
			setupMock: func(wg *sync.WaitGroup) {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, successful get from db",
			setupMock: func(wg *sync.WaitGroup) {
				wg.Add(1)

				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				feedbacks := []model.Feedback{
					{
						ID:             "feedback-id",
						ExperienceID:   "experience-id",
						Name:           "Asha Rao",
						OverallRating:  model.RatingGood,
						EnjoyedMost:    []string{"Music"},
						WouldRecommend: true,
					},
				}
				feedbacks[0].CreatedAt = timezone.Now()
				feedbacks[0].ModifiedAt = timezone.Now()

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(feedbacks, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Do(func(context.Context, string, any, int) { wg.Done() }).
					Return(nil)
			},
			wantErr:   false,
			wantTotal: 1,
		},
		{
			name: "get error",
			setupMock: func(wg *sync.WaitGroup) {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wg := &sync.WaitGroup{}
			tt.setupMock(wg)

			ctx := context.Background()
			result, err := svc.GetByExperience(ctx, "experience-id", gDto.QueryParams{Limit: 10, Page: 1})

			waitBackground(t, wg)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, result.TotalData)
			}
		})
	}
}
