package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/kardianos/service"
	log "github.com/sirupsen/logrus"

	"github.com/edgehive/motioneye-bridge/internal"
)

var Version string

// EncryptionKey can be injected at build time via -ldflags to decrypt config secrets.
var EncryptionKey = ""

var systemLog service.Logger
var fullConfigPath string
var bridge *Bridge

type program struct{}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	go p.run()
	return nil
}

func (p *program) run() {
	systemLog.Info("----Starting motioneye-bridge service-------")
	systemLog.Infof("Loading configuration from file %s", fullConfigPath)
	startBridge(fullConfigPath)
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Return with a few seconds.
	systemLog.Info("----Stopping motioneye-bridge service-------")
	stopBridge()
	return nil
}

func configureService() service.Service {
	svcConfig := service.Config{Name: "motioneye-bridge", DisplayName: "motionEye bridge", Description: "motionEye camera manager bridge service"}
	var prg program
	var err error
	var appService service.Service

	appService, err = service.New(&prg, &svcConfig)
	if err != nil {
		log.Fatal(err)
	}
	systemLog, err = appService.Logger(nil)
	if err != nil {
		fmt.Printf("Error initializing system logger %s", err.Error())
	}
	return appService
}

func configureLogger(logPath, level string) {
	if level == "" {
		level = "info"
	}
	lvl, _ := log.ParseLevel(level)
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{
		DisableColors:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	if logPath != "" && logPath != "-" {
		logPath = filepath.Join(logPath, "motioneye-bridge.log")
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0666)
		if err != nil {
			fmt.Printf("error opening file: %v", err)
			return
		}
		log.SetOutput(f)
	}
}

// encryptConfig re-writes the config file with its secrets map encrypted
// under the build-time encryption key.
func encryptConfig(configPath string) error {
	config, err := internal.LoadConfig(configPath)
	if err != nil {
		return err
	}
	secretManager := internal.NewSecretManager(EncryptionKey)
	secretManager.LoadSecrets(config.Secrets)
	config.Secrets, err = secretManager.GetEncryptedSecrets()
	if err != nil {
		return err
	}
	return config.Save(configPath)
}

func startBridge(mainConfigPath string) {
	config, err := internal.LoadConfig(mainConfigPath)
	if err != nil {
		log.Errorf("Failed to load config file. Err: %s", err.Error())
		return
	}

	logDir := internal.GetBinaryDir()
	if config.LogDir != "" {
		logDir = config.LogDir
	}
	configureLogger(logDir, config.LogLevel)

	log.Info("Starting motioneye-bridge service.")

	bridge, err = NewBridge(mainConfigPath, EncryptionKey)
	if err != nil {
		log.Errorf("Failed to assemble bridge. Err: %s", err.Error())
		return
	}
	if err = bridge.Start(); err != nil {
		log.Errorf("Failed to start bridge. Err: %s", err.Error())
	}
}

func stopBridge() {
	if bridge != nil {
		bridge.Stop()
		bridge = nil
	}
}

func sampleConfig() *internal.StaticConfig {
	return &internal.StaticConfig{
		ListenAddr:  ":8099",
		ExternalURL: "http://bridge-host:8099",
		LogLevel:    "info",
		Secrets:     map[string]string{},
		Instances: []internal.InstanceConfig{
			{
				ID:            "home",
				Name:          "Home motionEye",
				URL:           "http://motioneye-host:8765",
				AdminUsername: "admin",
				AdminPassword: "ADMIN_PASSWORD",
				WebhookSet:    true,
			},
		},
	}
}

func main() {
	log.Infof("----- Starting motioneye-bridge - version = %s ----------", Version)

	mainConfigPath := flag.String("config", "config.json", "Full path to main configuration file")
	base64encodedConfig := flag.String("bconfig", "", "Base64 encoded config")
	op := flag.String("op", "", "Supported operations : 'gen_config,encrypt_config,encrypt_secret,install,uninstall,run' ")
	textToEncrypt := flag.String("secret", "", "Secret to encrypt")

	flag.Parse()

	if *mainConfigPath == "config.json" {
		*mainConfigPath = filepath.Join(internal.GetBinaryDir(), *mainConfigPath)
	}
	fullConfigPath = *mainConfigPath

	// User can configure the app by passing the configuration as one base64 encoded string
	if *base64encodedConfig != "" {
		log.Info("Loading configuration from cmd line parameter")
		body, err := base64.StdEncoding.DecodeString(*base64encodedConfig)
		if err != nil {
			log.Errorf("Error decoding base64 encoded config: %s ", err.Error())
			return
		}
		if err = os.WriteFile(fullConfigPath, body, 0644); err != nil {
			log.Errorf("Error writing config file: %s ", err.Error())
			return
		}
	}

	if EncryptionKey != "" {
		log.Info("Encryption key is set . Will try to decrypt config secrets")
	} else {
		log.Info("Encryption key is not set .")
	}

	switch *op {
	case "gen_config":
		log.Info("Generating config file")
		if err := sampleConfig().Save(fullConfigPath); err != nil {
			log.Errorf("Failed to write config file: %s", err.Error())
		}
		return
	case "version":
		fmt.Println(Version)

	case "encrypt_config":
		if EncryptionKey == "" {
			fmt.Println("Please provide encryption key")
			return
		}
		if err := encryptConfig(fullConfigPath); err != nil {
			fmt.Println("Failed to encrypt config file. Err:", err.Error())
			return
		}
		fmt.Println("Config file has been encrypted")
		return

	case "encrypt_secret":
		if EncryptionKey == "" {
			fmt.Println("Please provide encryption key")
			return
		}
		if *textToEncrypt == "" {
			fmt.Println("Please provide text to encrypt")
			return
		}
		encrypted, err := internal.EncryptString(EncryptionKey, *textToEncrypt)
		if err != nil {
			fmt.Println("Failed to encrypt string. Err:", err.Error())
			return
		}
		fmt.Println("Encrypted string : ", encrypted)

	case "install":
		log.Info("Installing motioneye-bridge service")
		if runtime.GOOS == "linux" {
			if err := internal.PrepareLinuxServiceEnv(); err != nil {
				log.Error("Failed to prepare service environment. Err: ", err.Error())
			}
		}
		appService := configureService()
		err := appService.Install()
		if err != nil {
			log.Error("Failed to install service.Make sure you run installation as system administrator Err: ", err.Error())
		} else {
			err = appService.Start()
			if err != nil {
				log.Error("Failed to run service. Err: ", err.Error())
			}
		}
	case "uninstall":
		log.Info("Uninstalling motioneye-bridge service")
		appService := configureService()
		if err := appService.Uninstall(); err != nil {
			log.Error("Failed to uninstall service", err.Error())
		}
		if runtime.GOOS == "linux" {
			if err := internal.RemoveLinuxServiceEnv(); err != nil {
				log.Error("Failed to remove service environment. Err: ", err.Error())
			}
		}
	case "run":
		// Should be used to start the service from CLI
		startBridge(fullConfigPath)
		select {}
	default:
		// Used by OS service supervisor
		appService := configureService()
		if err := appService.Run(); err != nil {
			log.Error(err)
		}
	}
}
