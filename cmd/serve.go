package cmd

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"jobscreen/internal/logger"
)

const defaultListen = "127.0.0.1:5000"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an HTTP relay exposing the classifier",
	Long:  "Starts a small HTTP server with a single POST /check route that accepts a job posting and returns the plain-text verdict.",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", "", "listen address (default "+defaultListen+")")
	viper.BindPFlag("serve.listen", serveCmd.Flags().Lookup("listen"))
}

type checkRequest struct {
	Text string `json:"text" binding:"required"`
}

type checkResponse struct {
	Output string `json:"output"`
}

func serve() {
	ctx := context.Background()

	logg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logg.Fatal("getting a config", zap.Error(err))
	}

	checker := newChecker(ctx, config, logg)

	listen := defaultListen
	if config.Serve != nil && config.Serve.Listen != "" {
		listen = config.Serve.Listen
	}

	if !viper.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/check", func(c *gin.Context) {
		requestID := uuid.NewString()

		var req checkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logg.Warn("rejecting malformed check request",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a json object with a non-empty text field"})
			return
		}

		logg.Info("checking a job posting",
			zap.String("request_id", requestID),
			zap.Int("text_length", len(req.Text)),
		)

		result := checker.Check(c.Request.Context(), req.Text)

		logg.Info("check finished",
			zap.String("request_id", requestID),
			zap.String("label", string(result.Label)),
		)

		c.JSON(http.StatusOK, checkResponse{Output: result.String()})
	})

	logg.Info("starting the http relay", zap.String("listen", listen))
	if err := r.Run(listen); err != nil {
		logg.Fatal("running the http relay", zap.Error(err))
	}
}
