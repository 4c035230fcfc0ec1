package main

import (
	"fmt"
	"os"

	"generate-briefing-video/application/ports/outbound"
	"generate-briefing-video/application/services"
	"generate-briefing-video/config"
	"generate-briefing-video/infrastructure/adapters"
	"generate-briefing-video/infrastructure/gin_interface/controllers"
	"generate-briefing-video/middleware"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	videoConfig, err := config.GetVideoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get video config")
	}

	voiceConfig, err := config.GetVoiceConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get voice config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(64, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	contentFetcher := adapters.NewContentFetcher(nil, zeroLogger)
	synthesizer := adapters.NewSpeechSynthesizer(contentFetcher, voiceConfig, zeroLogger)
	slideRenderer := adapters.NewSlideRenderer(videoConfig, zeroLogger)
	assembler := adapters.NewFFmpegAssembler(videoConfig, zeroLogger)

	var publisher outbound.VideoPublisherPort
	var recorder outbound.BriefingRecordPort
	if os.Getenv("BUCKET_NAME") != "" || os.Getenv("DYNAMO_TABLE_NAME") != "" {
		sess := session.Must(session.NewSessionWithOptions(session.Options{
			SharedConfigState: session.SharedConfigEnable,
		}))

		if os.Getenv("BUCKET_NAME") != "" {
			s3Config, err := config.GetS3Config()
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to get s3 config")
			}
			publisher = adapters.NewS3VideoPublisher(zeroLogger, s3.New(sess), s3Config)
		}

		if os.Getenv("DYNAMO_TABLE_NAME") != "" {
			dynamoConfig, err := config.GetDynamoConfig()
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to get dynamo config")
			}
			recorder = adapters.NewBriefingRecordStore(zeroLogger, dynamodb.New(sess), dynamoConfig)
		}
	}

	composer := services.NewScriptComposer(videoConfig.ItemsPerTopic)
	planner := services.NewSlidePlanner(videoConfig.ItemsPerTopic, videoConfig.TitleSlideSeconds,
		videoConfig.TopicSlideSeconds, videoConfig.ItemSlideSeconds)
	deckRenderer := services.NewSlideDeckRenderer(zeroLogger, slideRenderer, workerPool)

	pipeline := services.NewBriefingPipeline(zeroLogger, workerPool, composer, planner, deckRenderer,
		synthesizer, assembler, publisher, recorder, services.PipelineOptions{
			OutputRoot:       videoConfig.OutputRoot,
			VoiceID:          voiceConfig.VoiceID,
			SynthesisTimeout: voiceConfig.Timeout,
		})

	briefingController := controllers.NewBriefingController(zeroLogger, pipeline)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	if jwksURL := os.Getenv("JWKS_URL"); jwksURL != "" {
		authHandler, err := middleware.NewAuthHandler(jwksURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create auth handler!")
		}
		router.Use(authHandler.AuthMiddleware())
	}

	briefingController.RegisterRoutes(router)

	err = router.Run(":8080")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
