// Command clothesline monitors a rain sensor and drives the retractable
// clothesline motors: retract on rain, re-extend after a confirmed dry
// period, and retract immediately if rain resumes mid-extension.
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

	"github.com/sweeney/clothesline/internal/gpio"
	"github.com/sweeney/clothesline/internal/indicator"
	"github.com/sweeney/clothesline/internal/logic"
	"github.com/sweeney/clothesline/internal/motor"
	"github.com/sweeney/clothesline/internal/mqtt"
	"github.com/sweeney/clothesline/internal/status"
	"github.com/sweeney/clothesline/internal/web"
)

func main() {
	poll := flag.Duration("poll", 100*time.Millisecond, "Rain sensor polling interval")
	motorRun := flag.Duration("motor-run", 15*time.Second, "Motor run time for one full traversal")
	dryDelay := flag.Duration("dry-delay", 30*time.Minute, "Continuous dry duration required before re-extension")
	speed := flag.Int("speed", 80, "Motor PWM duty percent, set once at startup")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	pinRain := flag.Int("pin-rain", gpio.DefaultPinRain, "BCM pin number for the rain sensor")
	pinAFwd := flag.Int("pin-a-fwd", gpio.DefaultPinMotorAFwd, "BCM pin number for motor A forward")
	pinARev := flag.Int("pin-a-rev", gpio.DefaultPinMotorARev, "BCM pin number for motor A reverse")
	pinBFwd := flag.Int("pin-b-fwd", gpio.DefaultPinMotorBFwd, "BCM pin number for motor B forward")
	pinBRev := flag.Int("pin-b-rev", gpio.DefaultPinMotorBRev, "BCM pin number for motor B reverse")
	pinLamp := flag.Int("pin-lamp", gpio.DefaultPinLamp, "BCM pin number for the status lamp")
	printState := flag.Bool("print-state", false, "Print current rain reading and exit")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")

	flag.Parse()

	pins := gpio.OutputPins{
		MotorAFwd: *pinAFwd,
		MotorARev: *pinARev,
		MotorBFwd: *pinBFwd,
		MotorBRev: *pinBRev,
		Lamp:      *pinLamp,
	}

	cfg := logic.Config{
		MotorRunTime:    *motorRun,
		RetractionDelay: *dryDelay,
	}

	if err := run(*poll, cfg, *speed, *broker, *heartbeat, *pinRain, pins, *printState, *httpAddr); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(poll time.Duration, cfg logic.Config, speed int, broker string, heartbeat time.Duration, pinRain int, pins gpio.OutputPins, printState bool, httpAddr string) error {
	// Initialize rain sensor
	sensor, err := gpio.NewRealSensor(pinRain)
	if err != nil {
		return fmt.Errorf("init rain sensor: %w", err)
	}
	defer sensor.Close()

	// Print state mode
	if printState {
		rain, err := sensor.Read()
		if err != nil {
			return fmt.Errorf("read rain sensor: %w", err)
		}
		fmt.Printf("rain: %s\n", rainString(rain))
		return nil
	}

	// Initialize outputs; PWM duty is fixed here and never varied.
	outputs, err := gpio.NewRealOutputs(pins, gpio.DefaultPWMChip, gpio.DefaultPWMChannelA, gpio.DefaultPWMChannelB, speed)
	if err != nil {
		return fmt.Errorf("init outputs: %w", err)
	}
	defer outputs.Close()

	// Initialize MQTT
	publisher := mqtt.NewRealPublisher(broker)
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:       poll.Milliseconds(),
		MotorRunMs:   cfg.MotorRunTime.Milliseconds(),
		DryDelayMs:   cfg.RetractionDelay.Milliseconds(),
		HeartbeatMs:  heartbeat.Milliseconds(),
		SpeedPercent: speed,
		Broker:       broker,
		HTTPAddr:     httpAddr,
	})

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
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: poll=%v motor-run=%v dry-delay=%v speed=%d%% broker=%s heartbeat=%v",
		poll, cfg.MotorRunTime, cfg.RetractionDelay, speed, broker, heartbeat)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(sensor, outputs, publisher, publisher, tracker, cfg, heartbeat, time.Now, ticker.C, sigCh)
}

func runLoop(sensor gpio.Sensor, outputs gpio.Outputs, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, cfg logic.Config, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	machine, err := logic.NewMachine(cfg, startTime)
	if err != nil {
		return fmt.Errorf("init state machine: %w", err)
	}

	actuator := motor.New(outputs)
	lamp := indicator.NewLamp(outputs)

	// Boot in EXTENDED with motors stopped: make the pins match.
	if err := actuator.Stop(); err != nil {
		return fmt.Errorf("stop motors at boot: %w", err)
	}

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			// Motors never outlive the controller.
			if err := actuator.Stop(); err != nil {
				log.Printf("stop motors on shutdown: %v", err)
			}

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

		case <-tick:
			t := now()
			rain, err := sensor.Read()
			if err != nil {
				// Worst case is one missed sample; the next tick re-reads.
				log.Printf("rain sensor read error: %v", err)
				continue
			}

			prev := machine.State()
			action := machine.Tick(rain, t)

			switch action {
			case logic.ActionBeginRetract:
				if err := actuator.DriveRetract(); err != nil {
					log.Printf("drive retract: %v", err)
				}
			case logic.ActionBeginExtend:
				if err := actuator.DriveExtend(); err != nil {
					log.Printf("drive extend: %v", err)
				}
			case logic.ActionMotorsDone:
				if err := actuator.Stop(); err != nil {
					log.Printf("stop motors: %v", err)
				}
			}

			if event := logic.TransitionEvent(prev, machine.State(), t); event != nil {
				log.Printf("transition: %s (state=%s rain=%v)", event.Type, event.State, rain)
				if err := publisher.Publish(*event); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			if err := lamp.Render(machine.State(), t); err != nil {
				log.Printf("lamp render: %v", err)
			}

			// Check for heartbeat
			if hbData := machine.CheckHeartbeat(t, heartbeat); hbData != nil {
				c := hbData.Counts
				log.Printf("heartbeat: uptime=%v retracts=%d/%d extends=%d/%d overrides=%d",
					hbData.Uptime, c.RetractsBegun, c.RetractsDone, c.ExtendsBegun, c.ExtendsDone, c.RainOverrides)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					tracker.Update(machine.State(), rain, machine.LastRain(), machine.CountsSnapshot())
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				tracker.Update(machine.State(), rain, machine.LastRain(), machine.CountsSnapshot())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

func rainString(rain bool) string {
	if rain {
		return "DETECTED"
	}
	return "NONE"
}
