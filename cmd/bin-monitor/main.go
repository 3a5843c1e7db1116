// Command bin-monitor watches a waste bin with an ultrasonic sensor, drives
// the fill-level LEDs, and sends a rate-limited email alert when the bin
// becomes full.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/bin-monitor/internal/gpio"
	"github.com/sweeney/bin-monitor/internal/led"
	"github.com/sweeney/bin-monitor/internal/logic"
	"github.com/sweeney/bin-monitor/internal/mqtt"
	"github.com/sweeney/bin-monitor/internal/notify"
	"github.com/sweeney/bin-monitor/internal/sensor"
	"github.com/sweeney/bin-monitor/internal/status"
	"github.com/sweeney/bin-monitor/internal/web"
	"github.com/sweeney/bin-monitor/internal/wifi"
)

// Alert credentials come from the environment, not flags, so they stay out
// of process listings.
const (
	envAPIKey    = "BREVO_API_KEY"
	envSender    = "ALERT_SENDER"
	envRecipient = "ALERT_RECIPIENT"
)

type config struct {
	interval    time.Duration
	recovery    time.Duration
	cooldown    time.Duration
	thresholds  logic.Thresholds
	broker      string
	httpAddr    string
	location    string
	ssid        string
	wifiTimeout time.Duration
	pins        gpio.PinConfig
	measure     bool
}

func main() {
	var cfg config
	flag.DurationVar(&cfg.interval, "interval", 10*time.Second, "measurement interval")
	flag.DurationVar(&cfg.recovery, "recovery", 5*time.Second, "sleep after a failed iteration")
	flag.DurationVar(&cfg.cooldown, "cooldown", 300*time.Second, "minimum time between full-bin alerts")
	flag.Float64Var(&cfg.thresholds.Empty, "empty-cm", 30, "distance above which the bin is empty")
	flag.Float64Var(&cfg.thresholds.Partial, "partial-cm", 10, "distance at or below which the bin is full")
	flag.StringVar(&cfg.broker, "broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	flag.StringVar(&cfg.httpAddr, "http", ":80", "HTTP status address (empty to disable)")
	flag.StringVar(&cfg.location, "location", "Dustbin Location", "bin location label for alerts")
	flag.StringVar(&cfg.ssid, "ssid", "", "wifi SSID label (association is OS-managed)")
	flag.DurationVar(&cfg.wifiTimeout, "wifi-timeout", 10*time.Second, "how long to wait for the network at startup")
	flag.IntVar(&cfg.pins.Trigger, "pin-trigger", gpio.DefaultPinTrigger, "BCM pin number for the sensor trigger")
	flag.IntVar(&cfg.pins.Echo, "pin-echo", gpio.DefaultPinEcho, "BCM pin number for the sensor echo")
	flag.IntVar(&cfg.pins.Green, "pin-green", gpio.DefaultPinGreen, "BCM pin number for the green LED")
	flag.IntVar(&cfg.pins.Yellow, "pin-yellow", gpio.DefaultPinYellow, "BCM pin number for the yellow LED")
	flag.IntVar(&cfg.pins.Red, "pin-red", gpio.DefaultPinRed, "BCM pin number for the red LED")
	flag.BoolVar(&cfg.measure, "measure", false, "take one distance reading, print it, and exit")
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg config) error {
	if err := cfg.thresholds.Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}

	// Initialize GPIO
	pins, err := gpio.NewRealPins(cfg.pins)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer pins.Close()

	clock := gpio.NewSystemClock()
	ranger := sensor.New(pins, clock, cfg.pins.Trigger, cfg.pins.Echo)

	// One-shot measurement mode
	if cfg.measure {
		d, err := ranger.Read()
		if err != nil {
			return fmt.Errorf("measure: %w", err)
		}
		fmt.Printf("%.2f cm (%s)\n", d, logic.Classify(d, cfg.thresholds))
		return nil
	}

	apiKey := os.Getenv(envAPIKey)
	sender := os.Getenv(envSender)
	recipient := os.Getenv(envRecipient)
	if apiKey == "" || sender == "" || recipient == "" {
		return fmt.Errorf("alert credentials missing: set %s, %s and %s", envAPIKey, envSender, envRecipient)
	}

	// The network must be up before monitoring starts; without it alerts
	// cannot be delivered. No retries here — restart policy belongs to the
	// service manager.
	connector := wifi.New(cfg.ssid)
	if err := connector.EnsureConnected(cfg.wifiTimeout); err != nil {
		return fmt.Errorf("connectivity: %w", err)
	}

	mailer := notify.NewBrevoMailer(apiKey, sender, recipient)

	// Initialize MQTT
	publisher := mqtt.NewRealPublisher(cfg.broker, cfg.location)
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		IntervalMs: cfg.interval.Milliseconds(),
		RecoveryMs: cfg.recovery.Milliseconds(),
		CooldownMs: cfg.cooldown.Milliseconds(),
		EmptyCM:    cfg.thresholds.Empty,
		PartialCM:  cfg.thresholds.Partial,
		Broker:     cfg.broker,
		HTTPPort:   cfg.httpAddr,
		Location:   cfg.location,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if cfg.httpAddr != "" {
		srv := web.New(cfg.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.httpAddr)
	}

	leds := led.New(pins, cfg.pins.Green, cfg.pins.Yellow, cfg.pins.Red)
	session := logic.NewSession(cfg.cooldown)

	log.Printf("started: interval=%v cooldown=%v thresholds=%.1f/%.1fcm broker=%s location=%q",
		cfg.interval, cfg.cooldown, cfg.thresholds.Empty, cfg.thresholds.Partial, cfg.broker, cfg.location)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(ranger, leds, mailer, publisher, publisher, tracker, session,
		cfg.thresholds, cfg.location, cfg.interval, cfg.recovery,
		time.Now, time.Sleep, sigCh)
}

// rangeSensor and indicator let tests substitute fakes for the hardware.
type rangeSensor interface {
	Read() (float64, error)
}

type indicator interface {
	Set(state logic.FillState) error
}

// runLoop is the perpetual monitor loop. It exits only on a signal; any
// fault inside an iteration is logged and followed by the shorter recovery
// sleep.
func runLoop(rng rangeSensor, leds indicator, mailer notify.Mailer, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, session *logic.Session, th logic.Thresholds, location string, interval, recovery time.Duration, now func() time.Time, sleep func(time.Duration), sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		default:
		}

		delay := interval
		if err := iterate(rng, leds, mailer, publisher, mqttStatus, tracker, session, th, location, now); err != nil {
			log.Printf("iteration error: %v", err)
			delay = recovery
		}
		sleep(delay)
	}
}

// iterate runs one measure→classify→indicate→notify pass. A returned error
// is a recoverable fault; the caller shortens the next sleep and continues.
func iterate(rng rangeSensor, leds indicator, mailer notify.Mailer, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, session *logic.Session, th logic.Thresholds, location string, now func() time.Time) error {
	t := now()

	distance, err := rng.Read()
	if err != nil {
		return fmt.Errorf("measure distance: %w", err)
	}

	state := logic.Classify(distance, th)
	log.Printf("distance %.2f cm, bin %s", distance, state)

	decision := session.Process(state, t)

	// A bad LED pin must not stop monitoring.
	if err := leds.Set(state); err != nil {
		log.Printf("indicator error: %v", err)
	}

	if decision.Changed {
		event := logic.Event{Timestamp: t, State: state, Distance: distance}
		if err := publisher.Publish(event); err != nil {
			log.Printf("publish error: %v", err)
		}
	}

	if decision.Notify {
		if err := mailer.Send(notify.FullAlert(location)); err != nil {
			log.Printf("alert send failed: %v", err)
			session.NotificationFailed()
		} else {
			log.Printf("alert sent for %q", location)
			session.NotificationSent(t)
			if tracker != nil {
				tracker.SetLastNotification(t)
			}
		}
	}

	if tracker != nil {
		tracker.Update(state, distance, t, session.CountsSnapshot())
		if mqttStatus != nil {
			tracker.SetMQTTConnected(mqttStatus.IsConnected())
		}
	}

	return nil
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
