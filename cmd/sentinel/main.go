// Sentinel - personal safety daemon.
// Watches voice, motion and camera channels for an emergency and fans the
// trigger out to the companion app, which runs the notification workflow.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/LavinaRoshni0305/sentinel-whisper-alert/internal/config"
	"github.com/LavinaRoshni0305/sentinel-whisper-alert/internal/log"
	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/alert"
	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/bridge"
	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/capture"
	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/detection"
	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/protocol"
	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/sensor"
	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/speech"
	"github.com/LavinaRoshni0305/sentinel-whisper-alert/pkg/web"
)

func main() {
	port := flag.String("port", config.Port(), "HTTP listen port")
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	flag.Parse()

	level := config.LogLevel()
	if *debug {
		level = "debug"
	}
	log.Init(level)
	logger := log.L()

	// Capability providers. Missing pieces degrade to unavailable channels
	// rather than startup failures.
	rec := speech.NewWSRecognizer(speech.Config{
		URL:    config.ASRURL(),
		APIKey: config.ASRKey(),
		Logger: logger,
	})
	if !rec.Available() {
		log.Warn("no ASR credentials, voice channel unavailable")
	}

	motionSrc := sensor.NewBridgeSource(logger)

	var cam capture.Camera
	if config.CameraDisabled() {
		log.Warn("camera disabled, camera channel unavailable")
	} else {
		cam = capture.NewWebcam(config.CameraDevice(), logger)
	}

	supervisor := detection.NewSupervisor(rec, motionSrc, cam, logger)

	// Alert worker, registered once on first detection start.
	var precache *alert.Precache
	if appURL := config.AppURL(); appURL != "" {
		precache = alert.NewPrecache(appURL, nil, logger)
	}
	worker := alert.NewWorker(alert.NewLogNotifier(logger), logger)
	registrar := alert.NewRegistrar(worker, precache, logger)
	defer registrar.Shutdown()

	// Companion devices feed the motion source and the recognizer.
	deviceHub := bridge.NewHub(logger)

	detector := &registeringDetector{sup: supervisor, registrar: registrar, devices: deviceHub}
	server := web.NewServer(*port, detector, worker, logger)

	deviceHub.OnMotion(func(deviceID string, m *protocol.MotionData) {
		motionSrc.Push(sensor.Sample{X: m.X, Y: m.Y, Z: m.Z})
	})
	deviceHub.OnMic(func(deviceID string, pcm16 []byte, sampleRate int) {
		// Dropped unless a voice session is running.
		_ = rec.SendAudio(pcm16)
	})
	deviceHub.RegisterRoutes(server.App())

	supervisor.OnEmergency(func() {
		log.Info("emergency trigger")
		server.BroadcastTrigger()
		deviceHub.BroadcastAlert(alert.NotificationTitle,
			"Emergency detected. Opening alert workflow.", alert.ViewActionID)
	})
	supervisor.OnWarning(func(w detection.Warning) {
		log.Warn("detection warning", "warning", w.String())
		server.BroadcastWarning(w)
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		supervisor.Stop()
		_ = server.Shutdown()
	}()

	if err := server.Start(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// registeringDetector registers the alert worker on the first detection
// start, then delegates to the supervisor. Applied settings are pushed to
// connected companion devices so their local thresholds match.
type registeringDetector struct {
	sup       *detection.Supervisor
	registrar *alert.Registrar
	devices   *bridge.Hub
	once      sync.Once
}

func (d *registeringDetector) Start(ctx context.Context, settings *detection.Settings) detection.Status {
	d.once.Do(func() {
		if err := d.registrar.RegisterOnce(ctx); err != nil {
			log.Warn("alert worker registration failed", "error", err)
		}
	})
	status := d.sup.Start(ctx, settings)
	if settings != nil && settings.Validate() == nil {
		d.devices.BroadcastConfig(protocol.ConfigData{
			VoiceEnabled:      settings.VoiceEnabled,
			MotionEnabled:     settings.MotionEnabled,
			MotionSensitivity: settings.MotionSensitivity,
			EmergencyKeywords: settings.EmergencyKeywords,
		})
	}
	return status
}

func (d *registeringDetector) Stop()                    { d.sup.Stop() }
func (d *registeringDetector) Status() detection.Status { return d.sup.Status() }
func (d *registeringDetector) Active() bool             { return d.sup.Active() }
