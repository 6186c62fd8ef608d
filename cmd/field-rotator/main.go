// Command field-rotator drives the magnetic field rotator: it spins a
// continuous-rotation servo to a target RPM inferred from the
// magnetometer signal and takes operator commands over a serial
// console.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lingyuan001/rotating-magnetic-field/internal/command"
	"github.com/lingyuan001/rotating-magnetic-field/internal/console"
	"github.com/lingyuan001/rotating-magnetic-field/internal/led"
	"github.com/lingyuan001/rotating-magnetic-field/internal/logic"
	"github.com/lingyuan001/rotating-magnetic-field/internal/mag"
	"github.com/lingyuan001/rotating-magnetic-field/internal/mqtt"
	"github.com/lingyuan001/rotating-magnetic-field/internal/servo"
	"github.com/lingyuan001/rotating-magnetic-field/internal/status"
	"github.com/lingyuan001/rotating-magnetic-field/internal/web"
)

func main() {
	poll := flag.Duration("poll", 100*time.Millisecond, "Control tick interval")
	device := flag.String("device", "/dev/ttyAMA0", "Serial console device")
	baud := flag.Int("baud", 115200, "Serial console baud rate")
	i2cBus := flag.String("i2c", "", "I2C bus name (empty = first available)")
	i2cAddr := flag.Uint("i2c-addr", mag.DefaultAddr, "Magnetometer I2C address")
	servoPin := flag.Int("servo-pin", servo.DefaultPin, "BCM pin for the servo PWM signal")
	ledPin := flag.Int("led-pin", led.DefaultPin, "BCM pin for the rotation indicator LED (-1 to disable)")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")
	debug := flag.Bool("debug", false, "Emit the filter diagnostics line every tick")
	readOnce := flag.Bool("read", false, "Sample the magnetometer once and exit")
	legacyClamp := flag.Bool("legacy-clamp", false, "Clamp only the upper throttle bound, as the original firmware did")

	flag.Parse()

	cfg := logic.DefaultConfig()
	if *legacyClamp {
		cfg.Clamp = logic.ClampUpperOnly
	}

	if err := run(cfg, *poll, *device, *baud, *i2cBus, uint16(*i2cAddr), *servoPin, *ledPin, *broker, *heartbeat, *httpAddr, *debug, *readOnce); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg logic.Config, poll time.Duration, device string, baud int, i2cBus string, i2cAddr uint16, servoPin, ledPin int, broker string, heartbeat time.Duration, httpAddr string, debug, readOnce bool) error {
	// Initialize the magnetometer
	sensor, err := mag.NewRealSensor(i2cBus, i2cAddr)
	if err != nil {
		return fmt.Errorf("init magnetometer: %w", err)
	}
	defer sensor.Close()

	// One-shot read mode
	if readOnce {
		r, err := sensor.Read()
		if err != nil {
			return fmt.Errorf("read magnetometer: %w", err)
		}
		fmt.Println(status.FormatReading(r.X, r.Y, r.Z, r.Magnitude()))
		return nil
	}

	// Initialize the servo, parked at neutral
	srv, err := servo.NewRealServo(servoPin)
	if err != nil {
		return fmt.Errorf("init servo: %w", err)
	}
	defer srv.Close()
	if err := srv.SetThrottle(cfg.NeutralThrottle); err != nil {
		return fmt.Errorf("park servo: %w", err)
	}

	// Initialize the operator console
	cons, err := console.NewRealConsole(device, baud)
	if err != nil {
		return fmt.Errorf("init console: %w", err)
	}
	defer cons.Close()

	// Initialize the indicator LED (optional)
	var indicator led.Indicator
	if ledPin >= 0 {
		indicator, err = led.NewRealIndicator(ledPin)
		if err != nil {
			return fmt.Errorf("init led: %w", err)
		}
		defer indicator.Close()
	}

	// Initialize MQTT
	publisher, err := mqtt.NewRealPublisher(broker)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      poll.Milliseconds(),
		HeartbeatMs: heartbeat.Milliseconds(),
		Broker:      broker,
		HTTPPort:    httpAddr,
		Device:      device,
		Baud:        baud,
		ServoPin:    servoPin,
		LEDPin:      ledPin,
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
		webSrv := web.New(httpAddr, tracker)
		go func() {
			if err := webSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer webSrv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: poll=%v device=%s@%d servo=BCM%d broker=%s heartbeat=%v", poll, device, baud, servoPin, broker, heartbeat)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(cfg, sensor, srv, cons, indicator, publisher, publisher, tracker, heartbeat, debug, time.Now, ticker.C, sigCh)
}

func runLoop(cfg logic.Config, sensor mag.Sensor, srv servo.Servo, cons console.Console, indicator led.Indicator, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, heartbeat time.Duration, debug bool, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	rot := logic.NewRotator(cfg, startTime)
	buf := command.NewLineBuffer()
	limits := command.Limits{
		MinThrottle:    cfg.MinThrottle,
		MaxThrottle:    cfg.MaxThrottle,
		MaxRPM:         cfg.MaxRPM,
		MaxStopMinutes: cfg.MaxStopMinutes,
	}
	lastHeartbeat := startTime

	// commit pushes the rotator's throttle to the servo when they
	// disagree. Called after the control step and after command
	// dispatch, so a dispatched command's effect is on the wire
	// before the next sample is taken.
	commit := func() {
		if srv.Throttle() == rot.Throttle() {
			return
		}
		if err := srv.SetThrottle(rot.Throttle()); err != nil {
			log.Printf("servo command error: %v", err)
		}
	}

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

			// Never leave the rotor spinning behind a dead daemon.
			rot.StopNow()
			commit()

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
			reading, err := sensor.Read()
			if err != nil {
				log.Printf("magnetometer read error: %v", err)
				continue
			}

			result := rot.Tick(logic.Sample{X: reading.X, Y: reading.Y, Z: reading.Z, Time: t})
			commit()

			if result.Crossing != nil {
				if indicator != nil {
					if _, err := indicator.Toggle(); err != nil {
						log.Printf("led error: %v", err)
					}
				}
				if err := publisher.Publish(*result.Crossing); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			if result.Stopped {
				log.Printf("stop deadline fired, servo parked")
				writeLine(cons, "Stopping Now")
				stopEvent := mqtt.SystemEvent{
					Timestamp: t,
					Event:     "STOPPED",
				}
				if tracker != nil {
					snap := tracker.Snapshot()
					stopEvent.RawPayload = status.FormatStatusEvent(snap, "STOPPED", "DEADLINE")
				}
				if err := publisher.PublishSystem(stopEvent); err != nil {
					log.Printf("stop publish error: %v", err)
				}
			}

			// Drain and dispatch pending operator input
			data, err := cons.Poll()
			if err != nil {
				log.Printf("console read error: %v", err)
			}
			for _, line := range buf.Feed(data) {
				dispatch(line, rot, sensor, cons, t, limits)
			}
			commit()

			// Check for heartbeat
			if heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
				lastHeartbeat = t
				hbEvent := mqtt.SystemEvent{
					Timestamp: t,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				tracker.Update(rot.Throttle(), rot.TargetRPM(), rot.EstimatedRPM(),
					reading.Y, reading.Magnitude(), rot.RemainingMinutes(t), rot.CountsSnapshot())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			// Per-tick console report
			writeLine(cons, status.FormatStatusLine(rot.Throttle(), reading.Y, reading.Magnitude(),
				rot.EstimatedRPM(), rot.TargetRPM(), rot.RemainingMinutes(t)))
			if debug {
				longAvg, shortAvg, lastInterval, meanInterval := rot.Diagnostics()
				writeLine(cons, status.FormatDebugLine(longAvg, shortAvg, lastInterval, meanInterval))
			}
			if pending := buf.Pending(); pending != "" {
				writeLine(cons, status.FormatEcho(pending))
			}
		}
	}
}

// dispatch applies one completed command line. Parse, range and verb
// errors are reported on the console and leave all state untouched.
func dispatch(line string, rot *logic.Rotator, sensor mag.Sensor, cons console.Console, now time.Time, limits command.Limits) {
	cmd, err := command.Parse(line)
	if err != nil {
		writeLine(cons, err.Error())
		return
	}
	if err := command.Validate(cmd, limits); err != nil {
		writeLine(cons, err.Error())
		return
	}

	switch cmd.Kind {
	case command.KindHelp:
		for _, l := range strings.Split(strings.TrimRight(command.HelpText, "\n"), "\n") {
			writeLine(cons, l)
		}
	case command.KindStopNow:
		rot.StopNow()
		writeLine(cons, "Stopped Servo")
	case command.KindStopIn:
		rot.ScheduleStop(now, cmd.Value)
		writeLine(cons, fmt.Sprintf("Set stop time in %.1f minutes", cmd.Value))
	case command.KindSetThrottle:
		rot.SetThrottle(cmd.Value)
		writeLine(cons, fmt.Sprintf("Set servo speed to %.2f", cmd.Value))
	case command.KindSetTargetRPM:
		rot.SetTargetRPM(cmd.Value)
		writeLine(cons, fmt.Sprintf("Set servo rpm to %.2f", cmd.Value))
	case command.KindRead:
		r, err := sensor.Read()
		if err != nil {
			writeLine(cons, fmt.Sprintf("magnetometer read failed: %v", err))
			return
		}
		writeLine(cons, status.FormatReading(r.X, r.Y, r.Z, r.Magnitude()))
	}
}

func writeLine(cons console.Console, s string) {
	if err := cons.WriteLine(s); err != nil {
		log.Printf("console write error: %v", err)
	}
}
