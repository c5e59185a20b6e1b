// Package main is the entry point for the PancyAdmin Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PancyStudios/PancyAdminGo/internal/commands"
	"github.com/PancyStudios/PancyAdminGo/internal/events"
	"github.com/PancyStudios/PancyAdminGo/pkg/automod"
	"github.com/PancyStudios/PancyAdminGo/pkg/config"
	"github.com/PancyStudios/PancyAdminGo/pkg/database"
	"github.com/PancyStudios/PancyAdminGo/pkg/discord"
	"github.com/PancyStudios/PancyAdminGo/pkg/errors"
	"github.com/PancyStudios/PancyAdminGo/pkg/logger"
	"github.com/PancyStudios/PancyAdminGo/pkg/models"
	"github.com/PancyStudios/PancyAdminGo/pkg/mqtt"
	"github.com/PancyStudios/PancyAdminGo/pkg/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Iniciando PancyAdmin Go...", "Main")
	logger.Info(fmt.Sprintf("Directorio de trabajo: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			err := discordClient.Stop()
			if err != nil {
				return
			}
		}
	})

	// Initialize database
	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		logger.Debug(fmt.Sprintf("Error connecting to database: %v", cfg.MongoDBURL), "Main")
		// Continue without database- it will attempt to reconnect
	}
	defer func() {
		if db != nil {
			err := db.Disconnect()
			if err != nil {
				return
			}
		}
	}()

	// Initialize global DataManagers and analytics flush loop
	if db != nil {
		database.InitGlobalDataManagers(db)
		database.StartAnalyticsFlush()
		defer database.StopAnalyticsFlush()
	}

	// Initialize MQTT
	mqttClientID := "pancyadmin"
	if !cfg.IsProd() {
		mqttClientID = "pancyadmin_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	// Initialize web server
	webServer := web.Init(cfg.LogsWebServerHook)
	web.SetupAPIRoutes(webServer)
	webServer.StartAsync(cfg.Port)

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Initialize the moderation engine
	var classifier automod.Classifier
	if cfg.AIModerationEnabled() {
		classifier = automod.NewOpenAIClassifier(cfg.OpenAIKey, cfg.OpenAIModel)
		logger.Info(fmt.Sprintf("Moderación con IA activada (modelo %s)", cfg.OpenAIModel), "Main")
	} else {
		logger.Warn("Moderación con IA desactivada: falta openaiApiKey", "Main")
	}

	backend := automod.NewDatabaseBackend()
	engine := automod.Init(automod.Config{
		Rules:      backend,
		Settings:   backend,
		Logs:       backend,
		Counters:   backend,
		Actions:    automod.NewDiscordActions(discordClient.Session),
		Classifier: classifier,
	})

	if err := engine.Load(); err != nil {
		logger.Warn(fmt.Sprintf("No se pudieron cargar las reglas de automod: %v", err), "Main")
	}

	// Live surfaces: websocket feed y eventos MQTT
	engine.AddViolationHook(web.ViolationHook())
	engine.AddViolationHook(func(msg *automod.Message, rule *models.AutoModRule, violation *automod.Violation) {
		mqtt.PublishViolation(mqtt.ViolationEvent{
			GuildID:     msg.GuildID,
			ChannelID:   msg.ChannelID,
			UserID:      msg.AuthorID,
			RuleName:    rule.Name,
			RuleType:    string(rule.Type),
			Description: violation.Description,
		})
	})

	mqtt.RegisterAutomodTopics(
		func() (interface{}, error) { return engine.Stats(), nil },
		engine.Reload,
	)

	// Register commands using the commands package
	commands.RegisterAll(discordClient)

	// Register events using the events package
	events.RegisterAll(discordClient)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func(discordClient *discord.ExtendedClient) {
		err := discordClient.Stop()
		if err != nil {

		}
	}(discordClient)

	logger.Success("PancyAdmin Go iniciado correctamente!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Apagando PancyAdmin Go...", "Main")
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
