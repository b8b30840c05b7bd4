// credmigrate is the one-shot backfill that encrypts every plaintext
// credential blob in the row store. Safe to re-run: already-encrypted rows
// are skipped.
package main

import (
	"context"

	"github.com/seoforge/seoforge/credential"
	"github.com/seoforge/seoforge/remote"
	"github.com/seoforge/seoforge/store"
	"github.com/seoforge/seoforge/utils"
	"github.com/seoforge/seoforge/utils/dotenv"
	Logger "github.com/seoforge/seoforge/utils/log"
)

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDefaultDBConnection()
	if err != nil {
		Logger.Log.Fatal("fail to connect to database: ", err)
	}

	gateway := credential.NewGateway(remote.NewFunctionClient(), store.NewGormStore(db))
	report, err := gateway.MigrateAll(context.Background())
	if err != nil {
		Logger.Log.Fatal("credential migration aborted: ", err)
	}
	if report.Failed > 0 {
		Logger.Log.Warnf("%d sites failed to migrate, re-run after the encryption service recovers", report.Failed)
	}
}
