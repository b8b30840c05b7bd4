package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/seoforge/seoforge/credential"
	"github.com/seoforge/seoforge/extraction"
	"github.com/seoforge/seoforge/publish"
	"github.com/seoforge/seoforge/publish/clients"
	"github.com/seoforge/seoforge/publish/platforms"
	"github.com/seoforge/seoforge/publish/sink"
	"github.com/seoforge/seoforge/remote"
	"github.com/seoforge/seoforge/seo"
	"github.com/seoforge/seoforge/server"
	"github.com/seoforge/seoforge/store"
	"github.com/seoforge/seoforge/utils"
	"github.com/seoforge/seoforge/utils/dotenv"
	Logger "github.com/seoforge/seoforge/utils/log"
)

func newEventSink() sink.PublishEventSink {
	if utils.IsProdEnv() {
		snsSink, err := sink.NewSnsSink()
		if err != nil {
			Logger.Log.Warn("fail to create SNS sink, publish events go to stderr: ", err)
			return sink.NewStdErrSink()
		}
		return snsSink
	}
	return sink.NewStdErrSink()
}

func newSeoClient(invoker remote.Invoker) *seo.Client {
	// the stats cache is an optimization, a missing Redis only costs extra
	// function calls
	if utils.IsProdEnv() {
		return seo.NewClientWithCache(invoker, utils.GetRedisClient())
	}
	return seo.NewClient(invoker)
}

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDefaultDBConnection()
	if err != nil {
		Logger.Log.Fatal("fail to connect to database: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	rowStore := store.NewGormStore(db)
	invoker := remote.NewFunctionClient()
	gateway := credential.NewGateway(invoker, rowStore)
	registry := platforms.DefaultRegistry(clients.NewDefaultHttpClient())

	handler := &server.Handler{
		Dispatcher:   publish.NewDispatcher(rowStore, gateway, registry, newEventSink()),
		Orchestrator: extraction.NewOrchestrator(invoker, newSeoClient(invoker), rowStore),
		Gateway:      gateway,
		Posts:        rowStore,
		Sites:        rowStore,
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())
	handler.RegisterRoutes(router)

	Logger.Log.Info("api server starts up")
	router.Run(":8080")
}
