package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/Keildelaman/realms-arpg-sub000/internal/content"
	"github.com/Keildelaman/realms-arpg-sub000/internal/expedition"
	"github.com/Keildelaman/realms-arpg-sub000/internal/mapgen"
	"github.com/Keildelaman/realms-arpg-sub000/internal/ws"
)

const updateInterval = 50 * time.Millisecond

func main() {
	log := logrus.New()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	configureLogging(log, cfg)

	logger := NewLogger(log)
	hub := ws.NewHub()
	broadcaster := NewBroadcaster(hub, NewSequenceGenerator(), logger)

	catalog := content.NewCatalog()
	generator := mapgen.NewGenerator(logger)

	dirCfg := expedition.DefaultConfig()
	dirCfg.MaxPortals = cfg.MaxPortals
	dirCfg.GlobalSpawnMultiplier = cfg.SpawnMultiplier
	dirCfg.GlobalPackSizeMultiplier = cfg.PackSizeMultiplier
	director := expedition.NewDirector(catalog, generator, broadcaster, logger, NewRarityUpgrader(), dirCfg)

	handlers := NewIntentHandlers(director, logger)

	go func() {
		ticker := time.NewTicker(updateInterval)
		defer ticker.Stop()
		last := time.Now()
		for now := range ticker.C {
			director.Update(now.Sub(last).Seconds())
			last = now
		}
	}()

	mux := http.NewServeMux()

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		hub.Add(conn)
		log.WithField("clients", hub.ClientCount()).Info("client connected")

		go func(c *websocket.Conn) {
			defer hub.Remove(c)
			defer c.Close(websocket.StatusNormalClosure, "")
			for {
				_, data, err := c.Read(context.Background())
				if err != nil {
					return
				}
				if err := handlers.HandleMessage(data); err != nil {
					log.WithError(err).Warn("intent rejected")
				}
			}
		}(conn)
	})

	if cfg.DebugMapDump {
		mux.HandleFunc("/debug/map", func(w http.ResponseWriter, r *http.Request) {
			run := director.Run()
			if run == nil {
				http.Error(w, "no expedition live", http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(run.Map); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		})
	}

	log.WithField("addr", cfg.Addr).Info("listening")
	log.Fatal(http.ListenAndServe(cfg.Addr, mux))
}

func configureLogging(log *logrus.Logger, cfg Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
}
