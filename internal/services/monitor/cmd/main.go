package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"google.golang.org/grpc"

	"github.com/LeonardoBeccarini/printer_monitor/internal/sensor"
	"github.com/LeonardoBeccarini/printer_monitor/internal/services/event"
	"github.com/LeonardoBeccarini/printer_monitor/internal/services/health"
	"github.com/LeonardoBeccarini/printer_monitor/internal/services/monitor"
	"github.com/LeonardoBeccarini/printer_monitor/internal/services/notifier"
	"github.com/LeonardoBeccarini/printer_monitor/internal/services/presence"
	"github.com/LeonardoBeccarini/printer_monitor/internal/settings"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/dedup"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/log"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/metrics"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/mqttbus"
)

var version = "dev"

func main() {
	cfg := loadConfig()

	logger := log.New(cfg.ServiceName, cfg.LogLevel)
	defer func() { _ = logger.Flush() }()
	logger.Infof("printer monitor %s starting (broker mode %s)", version, cfg.BrokerMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()
	reporter := health.NewReporter()

	// === Settings ===
	st := settings.New(cfg.SettingsPath, logger.With("component", "settings"))
	if err := st.Load(); err != nil {
		logger.Fatalf("load settings: %v", err)
	}
	go func() {
		if err := st.Watch(ctx); err != nil {
			logger.Warnf("settings hot reload disabled: %v", err)
		}
	}()

	// === Broker ===
	tracker := presence.NewTracker(mqttbus.JoinTopic(cfg.TopicPrefix, monitor.SensorTopic))
	tracker.OnChange(m.Subscribers)

	if cfg.BrokerMode == modeEmbedded {
		broker, err := mqttbus.NewEmbedded(cfg.EmbeddedAddress, logger.With("component", "broker"), presence.NewHook(tracker))
		if err != nil {
			logger.Fatalf("embedded broker: %v", err)
		}
		if err := broker.Serve(); err != nil {
			logger.Fatalf("%v", err)
		}
		defer broker.Close()
	}

	client, err := mqttbus.NewConn(ctx, &cfg.MQTT, logger)
	if err != nil {
		logger.Fatalf("mqtt connection error: %v", err)
	}
	defer mqttbus.Close(client, logger)
	pub := mqttbus.NewPublisher(client, cfg.TopicPrefix, logger)

	if cfg.BrokerMode == modeExternal {
		ann := presence.NewAnnouncements(tracker, dedup.New(10*time.Minute, 10000))
		go mqttbus.NewConsumer(client, pub.Topic("presence"), ann.Handle, logger).ConsumeMessage(ctx)
	}

	// === Sensor ===
	kind, err := sensor.ParseKind(cfg.SensorKind)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	var src monitor.Sensor
	if kind == sensor.KindSimulated {
		src = sensor.NewSimulator(time.Now().UnixNano())
	} else {
		remote := sensor.NewRemote(kind, cfg.SensorStale)
		go mqttbus.NewConsumer(client, pub.Topic("probe"), remote.Handle, logger).ConsumeMessage(ctx)
		src = remote
	}
	logger.Infof("sensor %s", kind)

	// === Alert history ===
	bus := monitor.MultiBus{pub}
	var (
		writer *event.Writer
		influx influxdb2.Client
	)
	if cfg.InfluxURL != "" {
		opts := influxdb2.DefaultOptions().
			SetBatchSize(uint(cfg.BatchSize)).
			SetFlushInterval(uint(cfg.FlushInterval.Milliseconds()))
		influx = influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken, opts)
		defer influx.Close()
		writer = event.NewWriter(influx.WriteAPI(cfg.InfluxOrg, cfg.InfluxBucket), logger.With("component", "influx"))
		bus = append(bus, event.NewAlertSink(writer, logger))
	}

	// === Notifications ===
	var (
		sender  notifier.Sender = notifier.NewLogSender(logger)
		breaker event.Breaker
	)
	if cfg.SMTP.Host != "" {
		b := notifier.NewBreakerSender(
			notifier.NewEmailSender(cfg.SMTP, st.EmailEnabled),
			uint32(cfg.CBFails), cfg.CBOpen, 0)
		sender, breaker = b, b
	}
	dispatcher := notifier.New(cfg.QueueCapacity, sender, logger.With("component", "notifier"), m)
	go dispatcher.Run(ctx)

	var connectivity monitor.Connectivity = monitor.ConnectivityFunc(client.IsConnectionOpen)
	if cfg.ConnectivityTarget != "" {
		prober := monitor.NewProber(cfg.ConnectivityTarget, cfg.ProbeInterval, logger)
		go prober.Run(ctx)
		connectivity = prober
	}

	// === Scheduler ===
	sched := monitor.NewScheduler(monitor.Deps{
		Sensor:       src,
		Config:       st,
		Bus:          bus,
		Notifier:     dispatcher,
		Connectivity: connectivity,
		Subscribers:  tracker,
		Display: monitor.MultiDisplay{
			monitor.NewLogDisplay(logger.With("component", "display")),
			monitor.NewMetricsDisplay(m, reporter),
		},
		Logger:  logger.With("component", "scheduler"),
		Metrics: m,
	}, cfg.SampleInterval)
	go sched.Run(ctx)

	// === HTTP ===
	hs := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:           newMux(client, sched, st, writer, breaker, influx, cfg, m, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Infof("HTTP listening on :%d", cfg.HTTPPort)
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server error: %v", err)
		}
	}()

	// === gRPC health ===
	lis, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.GRPCPort))
	if err != nil {
		logger.Fatalf("grpc listen: %v", err)
	}
	grpcServer := grpc.NewServer()
	reporter.Register(grpcServer)
	go func() {
		logger.Infof("gRPC health listening on :%d", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Errorf("grpc server error: %v", err)
		}
	}()

	// === Wait for signal ===
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Infof("shutting down...")

	cancel()
	reporter.Shutdown()
	grpcServer.GracefulStop()

	shCtx, shCancel := context.WithTimeout(context.Background(), cfg.ReadinessGrace)
	defer shCancel()
	_ = hs.Shutdown(shCtx)
}

func newMux(client mqtt.Client, sched *monitor.Scheduler, st *settings.Settings, writer *event.Writer, breaker event.Breaker,
	influx influxdb2.Client, cfg Config, m *metrics.Metrics, logger log.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/readings", event.NewReadingsHandler(sched))
	mux.Handle("/api/settings", event.NewSettingsHandler(st))
	mux.Handle("/healthz", event.NewHealthHandler(client, sched, writer, breaker))
	mux.Handle("/readyz", event.NewReadyHandler(client, sched, 2*time.Second))
	mux.Handle("/metrics", m.Handler())
	if influx != nil {
		mux.Handle("/alerts/latest", event.NewAlertHistoryHandler(influx.QueryAPI(cfg.InfluxOrg), cfg.InfluxBucket, logger))
	}
	return mux
}
