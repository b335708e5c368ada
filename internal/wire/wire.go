package wire

import (
	"Murmur/internal/api"
	"Murmur/internal/api/config"
	"Murmur/internal/api/handler"
	"Murmur/internal/job"
	"Murmur/internal/pkg/cron"
	"Murmur/internal/pkg/kafka"
	"Murmur/internal/pkg/storage"
	"Murmur/internal/service"

	"github.com/gin-gonic/gin"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router   *gin.Engine
	Store    storage.Store
	Producer kafka.Producer
	CronMgr  *cron.Manager
}

func BuildApplication(store storage.Store, producer kafka.Producer, cfg *config.Config) (*ApplicationContainer, error) {
	cols := cfg.Storage.Collections

	entryService := service.NewEntryService(store, cols)
	feedService := service.NewFeedService(store, cols)
	commentService := service.NewCommentService(store, cols)
	voteService := service.NewVoteService(store, cols)
	moderationService := service.NewModerationService(store, cols, cfg.Moderation, producer)
	adminService := service.NewAdminService(store, cols, cfg.Admin)

	handlers := &api.HandlersGroup{
		EntryHandler:   handler.NewEntryHandler(entryService, feedService),
		CommentHandler: handler.NewCommentHandler(commentService, feedService),
		VoteHandler:    handler.NewVoteHandler(voteService),
		ReportHandler:  handler.NewReportHandler(moderationService),
		AdminHandler:   handler.NewAdminHandler(adminService),
	}

	router := api.SetupRouter(handlers)

	purgeJob := job.NewArchivePurgeJob(store, cols, cfg.Moderation)
	cronMgr := cron.NewCronManager(purgeJob)

	return &ApplicationContainer{
		Router:   router,
		Store:    store,
		Producer: producer,
		CronMgr:  cronMgr,
	}, nil
}
