package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"mehfil/config"
	fsMocks "mehfil/infras/filestore/mocks"
	"mehfil/infras/otel/mocks"
	experienceMocks "mehfil/internal/domains/experience/mocks"
	"mehfil/internal/domains/experience/model"
	"mehfil/internal/domains/experience/model/dto"
	"mehfil/internal/domains/experience/service"
	cacheMocks "mehfil/shared/cache/mocks"
	"mehfil/shared/constant"
	gDto "mehfil/shared/dto"
	"mehfil/shared/failure"
	gModel "mehfil/shared/model"
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

func newExperience(id, imageURL string) model.Experience {
	return model.Experience{
		ID:               id,
		Name:             "Ghazal Evening",
		ShortDescription: "An evening of ghazals",
		Date:             time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Day:              "Saturday",
		Time:             "7:00 PM",
		RegistrationFee:  499,
		ArtistName:       "Test Artist",
		ImageURL:         imageURL,
		NumberOfSeats:    40,
		IsActive:         true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}
}

func TestExperienceService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := experienceMocks.NewMockExperience(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockFileStore := fsMocks.NewMockFileStore(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockFileStore)

	baseReq := dto.CreateExperienceRequest{
		Name:             "Ghazal Evening",
		ShortDescription: "An evening of ghazals",
		Date:             "2026-03-14",
		Time:             "7:00 PM",
		RegistrationFee:  499,
		ArtistName:       "Test Artist",
		NumberOfSeats:    40,
	}

	tests := []struct {
		name       string
		req        func() dto.CreateExperienceRequest
		setupMock  func(wg *sync.WaitGroup)
		wantErr    bool
		wantCode   int
		wantActive bool
		wantImage  string
	}{
		{
			name: "successful creation with external image url",
			req: func() dto.CreateExperienceRequest {
				req := baseReq
				req.ImageURL = "https://example.com/ghazal.jpg"

				return req
			},
			setupMock: func(wg *sync.WaitGroup) {
				wg.Add(2)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Do(func(context.Context, string) { wg.Done() }).
					Return(nil).
					Times(2)
			},
			wantErr:    false,
			wantActive: true,
			wantImage:  "https://example.com/ghazal.jpg",
		},
		{
			name: "uploaded file wins over image url",
			req: func() dto.CreateExperienceRequest {
				req := baseReq
				req.ImageURL = "https://example.com/ghazal.jpg"
				req.Image = &multipart.FileHeader{Filename: "ghazal.png", Size: 1024}

				return req
			},
			setupMock: func(wg *sync.WaitGroup) {
				wg.Add(2)

				mockFileStore.EXPECT().
					Store(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("/uploads/123-ghazal.png", nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Do(func(context.Context, string) { wg.Done() }).
					Return(nil).
					Times(2)
			},
			wantErr:    false,
			wantActive: true,
			wantImage:  "/uploads/123-ghazal.png",
		},
		{
			name: "missing image file and url",
			req: func() dto.CreateExperienceRequest {
				return baseReq
			},
			setupMock: func(wg *sync.WaitGroup) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "is_active false is preserved",
			req: func() dto.CreateExperienceRequest {
				req := baseReq
				req.ImageURL = "https://example.com/ghazal.jpg"
				req.IsActive = "false"

				return req
			},
			setupMock: func(wg *sync.WaitGroup) {
				wg.Add(2)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Do(func(context.Context, string) { wg.Done() }).
					Return(nil).
					Times(2)
			},
			wantErr:    false,
			wantActive: false,
			wantImage:  "https://example.com/ghazal.jpg",
		},
		{
			name: "unparseable is_active means inactive",
			req: func() dto.CreateExperienceRequest {
				req := baseReq
				req.ImageURL = "https://example.com/ghazal.jpg"
				req.IsActive = "maybe"

				return req
			},
			setupMock: func(wg *sync.WaitGroup) {
				wg.Add(2)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Do(func(context.Context, string) { wg.Done() }).
					Return(nil).
					Times(2)
			},
			wantErr:    false,
			wantActive: false,
			wantImage:  "https://example.com/ghazal.jpg",
		},
		{
			name: "file store error",
			req: func() dto.CreateExperienceRequest {
				req := baseReq
				req.Image = &multipart.FileHeader{Filename: "ghazal.png", Size: 1024}

				return req
			},
			setupMock: func(wg *sync.WaitGroup) {
				mockFileStore.EXPECT().
					Store(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("disk full"))
			},
			wantErr: true,
		},
		{
			name: "repository error",
			req: func() dto.CreateExperienceRequest {
				req := baseReq
				req.ImageURL = "https://example.com/ghazal.jpg"

				return req
			},
			setupMock: func(wg *sync.WaitGroup) {
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

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			result, err := svc.Create(ctx, tt.req())

			waitBackground(t, wg)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantActive, result.IsActive)
				assert.Equal(t, tt.wantImage, result.ImageURL)
				assert.Equal(t, "Saturday", result.Day)
			}
		})
	}
}

func TestExperienceService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := experienceMocks.NewMockExperience(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockFileStore := fsMocks.NewMockFileStore(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockFileStore)

	tests := []struct {
		name       string
		params     gDto.QueryParams
		filter     gDto.FilterGroup
		setupMock  func(wg *sync.WaitGroup)
		wantErr    bool
		wantResult dto.GetExperiencesResponse
	}{
		{
			name: "successful get all",
			params: gDto.QueryParams{
				Limit: 10,
				Page:  1,
			},
			filter: gDto.FilterGroup{},
			setupMock: func(wg *sync.WaitGroup) {
				wg.Add(2)

				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Experience{newExperience("test-id", "/uploads/1-a.png")}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Do(func(context.Context, string, any, int) { wg.Done() }).
					Return(nil).
					Times(2)
			},
			wantErr: false,
			wantResult: dto.GetExperiencesResponse{
				TotalData: 1,
				TotalPage: 1,
			},
		},
		{
			name: "count error",
			params: gDto.QueryParams{
				Limit: 10,
				Page:  1,
			},
			filter: gDto.FilterGroup{},
			setupMock: func(wg *sync.WaitGroup) {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wg := &sync.WaitGroup{}
			tt.setupMock(wg)

			ctx := context.Background()
			result, err := svc.GetAll(ctx, tt.params, tt.filter)

			waitBackground(t, wg)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantResult.TotalData, result.TotalData)
				assert.Equal(t, tt.wantResult.TotalPage, result.TotalPage)
			}
		})
	}
}

func TestExperienceService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := experienceMocks.NewMockExperience(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockFileStore := fsMocks.NewMockFileStore(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockFileStore)

	tests := []struct {
		name      string
		id        string
		setupMock func(wg *sync.WaitGroup)
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache hit",
			id:   "test-id",
			setupMock: func(wg *sync.WaitGroup) {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
			wantID:  "",
		},
		{
			name: "cache miss, successful get from db",
			id:   "test-id",
			setupMock: func(wg *sync.WaitGroup) {
				wg.Add(1)

				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(newExperience("test-id", "/uploads/1-a.png"), nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Do(func(context.Context, string, any, int) { wg.Done() }).
					Return(nil)
			},
			wantErr: false,
			wantID:  "test-id",
		},
		{
			name: "experience not found",
			id:   "nonexistent-id",
			setupMock: func(wg *sync.WaitGroup) {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Experience{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wg := &sync.WaitGroup{}
			tt.setupMock(wg)

			ctx := context.Background()
			result, err := svc.Get(ctx, tt.id)

			waitBackground(t, wg)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 404, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				if tt.wantID != "" {
					assert.Equal(t, tt.wantID, result.ID)
				}
			}
		})
	}
}

func TestExperienceService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := experienceMocks.NewMockExperience(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockFileStore := fsMocks.NewMockFileStore(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockFileStore)

	baseReq := dto.UpdateExperienceRequest{
		Name:             "Ghazal Evening",
		ShortDescription: "An evening of ghazals",
		Date:             "2026-03-14",
		Time:             "7:00 PM",
		RegistrationFee:  499,
		ArtistName:       "Test Artist",
		NumberOfSeats:    40,
	}

	tests := []struct {
		name      string
		req       func() dto.UpdateExperienceRequest
		setupMock func(wg *sync.WaitGroup)
		wantErr   bool
		wantImage string
	}{
		{
			name: "successful update keeps existing image",
			req: func() dto.UpdateExperienceRequest {
				return baseReq
			},
			setupMock: func(wg *sync.WaitGroup) {
				wg.Add(3)

				existing := newExperience("test-id", "/uploads/1-a.png")

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Do(func(context.Context, string) { wg.Done() }).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Do(func(context.Context, string) { wg.Done() }).
					Return(nil).
					Times(2)
			},
			wantErr:   false,
			wantImage: "/uploads/1-a.png",
		},
		{
			name: "new file replaces the image reference",
			req: func() dto.UpdateExperienceRequest {
				req := baseReq
				req.Image = &multipart.FileHeader{Filename: "replacement.png", Size: 2048}

				return req
			},
			setupMock: func(wg *sync.WaitGroup) {
				wg.Add(3)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(newExperience("test-id", "/uploads/1-a.png"), nil)

				mockFileStore.EXPECT().
					Store(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("/uploads/2-replacement.png", nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(newExperience("test-id", "/uploads/2-replacement.png"), nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Do(func(context.Context, string) { wg.Done() }).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Do(func(context.Context, string) { wg.Done() }).
					Return(nil).
					Times(2)
			},
			wantErr:   false,
			wantImage: "/uploads/2-replacement.png",
		},
		{
			name: "experience not found",
			req: func() dto.UpdateExperienceRequest {
				return baseReq
			},
			setupMock: func(wg *sync.WaitGroup) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Experience{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wg := &sync.WaitGroup{}
			tt.setupMock(wg)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			result, err := svc.Update(ctx, tt.req(), "test-id")

			waitBackground(t, wg)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantImage, result.ImageURL)
			}
		})
	}
}

func TestExperienceService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := experienceMocks.NewMockExperience(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockFileStore := fsMocks.NewMockFileStore(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockFileStore)

	active := true

	tests := []struct {
		name      string
		setupMock func(wg *sync.WaitGroup)
		wantErr   bool
	}{
		{
			name: "successful status update",
			setupMock: func(wg *sync.WaitGroup) {
				wg.Add(3)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(newExperience("test-id", "/uploads/1-a.png"), nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Do(func(context.Context, string) { wg.Done() }).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Do(func(context.Context, string) { wg.Done() }).
					Return(nil).
					Times(2)
			},
			wantErr: false,
		},
		{
			name: "experience not found",
			setupMock: func(wg *sync.WaitGroup) {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wg := &sync.WaitGroup{}
			tt.setupMock(wg)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			_, err := svc.UpdateStatus(ctx, dto.UpdateExperienceStatusRequest{IsActive: &active}, "test-id")

			waitBackground(t, wg)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExperienceService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := experienceMocks.NewMockExperience(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockFileStore := fsMocks.NewMockFileStore(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockFileStore)

	tests := []struct {
		name      string
		setupMock func(wg *sync.WaitGroup)
		wantErr   bool
	}{
		{
			name: "local image is removed before the record",
			setupMock: func(wg *sync.WaitGroup) {
				wg.Add(3)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(newExperience("test-id", "/uploads/1-a.png"), nil)

				mockFileStore.EXPECT().
					Remove(gomock.Any(), "/uploads/1-a.png").
					Return(nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Do(func(context.Context, string) { wg.Done() }).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Do(func(context.Context, string) { wg.Done() }).
					Return(nil).
					Times(2)
			},
			wantErr: false,
		},
		{
			name: "external image url is left untouched",
			setupMock: func(wg *sync.WaitGroup) {
				wg.Add(3)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(newExperience("test-id", "https://example.com/ghazal.jpg"), nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Do(func(context.Context, string) { wg.Done() }).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Do(func(context.Context, string) { wg.Done() }).
					Return(nil).
					Times(2)
			},
			wantErr: false,
		},
		{
			name: "file removal failure aborts the delete",
			setupMock: func(wg *sync.WaitGroup) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(newExperience("test-id", "/uploads/1-a.png"), nil)

				mockFileStore.EXPECT().
					Remove(gomock.Any(), "/uploads/1-a.png").
					Return(errors.New("permission denied"))
			},
			wantErr: true,
		},
		{
			name: "experience not found",
			setupMock: func(wg *sync.WaitGroup) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Experience{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wg := &sync.WaitGroup{}
			tt.setupMock(wg)

			ctx := context.Background()
			err := svc.Delete(ctx, "test-id")

			waitBackground(t, wg)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
