package log

import (
	"os"

	"github.com/seoforge/seoforge/utils/dotenv"
	"github.com/seoforge/seoforge/utils/flag"
	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()

	// JSON format in production for log ingestion, plain text elsewhere for
	// better readability.
	if os.Getenv("SEOFORGE_ENV") == dotenv.ProdEnv {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetOutput(os.Stderr)

	Log = logger.WithFields(
		logrus.Fields{"service": *flag.ServiceName, "is_development": os.Getenv("SEOFORGE_ENV") != dotenv.ProdEnv},
	)
}
