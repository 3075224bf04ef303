package main

import (
	"log"
	"os"

	echoapi "github.com/manhreal/web-2-grw-sub000/apps/api/echo"
	"github.com/manhreal/web-2-grw-sub000/core"
	"github.com/manhreal/web-2-grw-sub000/core/advising"
	"github.com/manhreal/web-2-grw-sub000/core/catalog"
	"github.com/manhreal/web-2-grw-sub000/core/freetest"
	"github.com/manhreal/web-2-grw-sub000/core/user"
	emailsvc "github.com/manhreal/web-2-grw-sub000/services/email"
	sendgridmail "github.com/manhreal/web-2-grw-sub000/services/email/sendgrid"
	logsvc "github.com/manhreal/web-2-grw-sub000/services/logger"
	"github.com/manhreal/web-2-grw-sub000/storage/database"
	"github.com/manhreal/web-2-grw-sub000/storage/database/sqlxrepos"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lshortfile)

	conf := core.NewConfig()

	var logger core.Logger
	if conf.Debug || conf.RollbarToken == "" {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	core.InitValidators()

	db, err := database.Open(conf)
	errAndDie(std, err)
	defer db.Close()

	// in DEV, bring the schema up on boot; everywhere else migrations run
	// through the admin CLI
	if conf.Debug {
		errAndDie(std, database.Migrate(db))
	}

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf.AppName, conf.DefaultFromEmail)
	} else {
		mailSvc = sendgridmail.NewService(conf.SendgridAPIKey, conf.AppName, conf.DefaultFromEmail, logger)
	}

	app := echoapi.NewServer(&echoapi.Options{
		Addr:        conf.Server.Address(),
		Conf:        conf,
		Logger:      logger,
		UserSvc:     user.NewService(sqlxrepos.NewUserRepository(db)),
		CatalogSvc:  catalog.NewService(sqlxrepos.NewCatalogRepository(db)),
		TestSvc:     freetest.NewService(sqlxrepos.NewFreetestRepository(db)),
		AdvisingSvc: advising.NewService(sqlxrepos.NewAdvisingRepository(db), mailSvc, conf.AdvisingNotifyEmail),
	})
	app.Start()
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
