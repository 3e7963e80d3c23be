package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"networth/auth"
	"networth/components/admin"
	"networth/components/aitoken"
	"networth/components/card"
	"networth/components/connection"
	"networth/components/fcm"
	"networth/components/invite"
	"networth/components/notification"
	"networth/components/tempcard"
	"networth/components/user"
	"networth/config"
	"networth/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	addr           string
	configPath     string
	verbosityLevel int
)

func showHelp() {
	fmt.Printf("Usage:%s {params}\n", os.Args[0])
	fmt.Println("      -a {listen addr}")
	fmt.Println("      -c {config file path}")
	fmt.Println("      -h (show help info)")
	fmt.Println("      -v {0-2} (verbosity level, default 0)")
}

func parse() bool {
	flag.StringVar(&addr, "a", "", "address to use")
	flag.StringVar(&configPath, "c", "", "config file path")
	flag.IntVar(&verbosityLevel, "v", 0, "verbosity level, higher value - more logs")
	help := flag.Bool("h", false, "help info")
	flag.Parse()

	if *help {
		return false
	}
	return true
}

func main() {
	if !parse() {
		showHelp()
		os.Exit(-1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("config error: %v\n", err)
		os.Exit(-1)
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	logger := utils.InitLogger(verbosityLevel)
	logger.Info(fmt.Sprintf("verbosity level is: %d", verbosityLevel))

	ctx := context.TODO()

	// Connect to MongoDB
	mongoconn := options.Client().ApplyURI(cfg.Mongo.URI)
	mongoclient, err := mongo.NewClient(mongoconn)
	if err != nil {
		panic(err)
	}

	err = mongoclient.Connect(ctx)
	if err != nil {
		panic(err)
	}

	if err := mongoclient.Ping(ctx, readpref.Primary()); err != nil {
		panic(err)
	}

	fmt.Println("MongoDB successfully connected...")
	db := mongoclient.Database(cfg.Mongo.Database)

	server := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	server.Use(cors.New(corsConfig))

	limiter := ratelimit.NewBucketWithRate(cfg.Server.RateLimit, int64(cfg.Server.RateLimit))
	mailer := auth.NewSMTPMailer(cfg.Mail)
	authware := auth.RequireAuth(cfg.Auth.Secret)
	adminware := auth.RequireAdmin(cfg.Auth.AdminSecret)

	userRoute := user.NewUserRoute(db, ctx, logger, limiter, mailer, cfg.Auth, cfg.Google, cfg.Mongo.Timeout)
	userService := userRoute.GetUserService()
	fcmService := userRoute.GetFcmService()

	cardRoute := card.NewCardRoute(db, ctx, logger, limiter, userService, cfg.Mongo.Timeout)
	cardService := cardRoute.GetCardService()

	notifRoute := notification.NewNotifRoute(db, ctx, logger, limiter, cardService, cfg.Mongo.Timeout)
	notifService := notifRoute.GetNotifService()

	// Push delivery is optional, the engine works without it.
	var pusher connection.Pusher
	if p, err := fcm.NewPusher(ctx, cfg.FCM, logger, fcmService, userService); err != nil {
		logger.Error(err, "push notifications disabled")
	} else {
		pusher = p
	}

	connRoute := connection.NewConnectionRoute(logger, limiter, cardService, notifService, pusher, cfg.Invite.CardLink)
	engine := connRoute.GetEngine()

	tempcardService := tempcard.NewTempCardService(db.Collection("tempcards"), ctx, cfg.Mongo.Timeout)
	inviteRoute := invite.NewInviteRoute(logger, limiter, userService, cardService, tempcardService, notifService, engine, mailer, cfg.Invite)

	adminRoute := admin.NewAdminRoute(logger, limiter, userService, cardService, notifService, fcmService, mailer, cfg.Auth)
	aitokenRoute := aitoken.NewAITokenRoute(db, ctx, logger, limiter, cfg.Mongo.Timeout)

	userRoute.InitRouteTo(server, authware)
	cardRoute.InitRouteTo(server, authware)
	notifRoute.InitRouteTo(server, authware)
	connRoute.InitRouteTo(server, authware)
	inviteRoute.InitRouteTo(server, authware)
	adminRoute.InitRouteTo(server, adminware)
	aitokenRoute.InitRouteTo(server, adminware)

	server.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/ping/")
	})
	server.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	logger.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil {
		panic(err)
	}
}
