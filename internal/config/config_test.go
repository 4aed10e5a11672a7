package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/relabs-tech/home_display/internal/grid"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, "home_display.config", `
# broker on the study pi
MQTT_BROKER=tcp://studypi.local:1883
TELEMETRY_SENSOR_IDX=42
BAROMETER_SOURCE=mock
BAROMETER_I2C_ADDR=0x77
BAROMETER_CALIBRATION_OFFSET=2.5
BAROMETER_SAMPLE_INTERVAL_MINUTES=18
DISPLAY_SINKS=console, OLED,websocket
LOW_LIGHT_LUX=25
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MQTTBroker != "tcp://studypi.local:1883" {
		t.Errorf("broker %q", cfg.MQTTBroker)
	}
	if cfg.TelemetrySensorIdx != 42 || cfg.BarometerI2CAddr != 0x77 {
		t.Errorf("idx %d addr %#x", cfg.TelemetrySensorIdx, cfg.BarometerI2CAddr)
	}
	if cfg.BarometerSource != "mock" || cfg.BarometerCalibrationOffset != 2.5 {
		t.Errorf("source %q offset %v", cfg.BarometerSource, cfg.BarometerCalibrationOffset)
	}
	if !cfg.HasSink("oled") || !cfg.HasSink("websocket") || len(cfg.DisplaySinks) != 3 {
		t.Errorf("sinks %v", cfg.DisplaySinks)
	}
	if cfg.LowLightLux != 25 {
		t.Errorf("lux %v", cfg.LowLightLux)
	}
	// untouched keys keep their defaults
	if cfg.TopicHomebridge != "homebridge/to/set" || cfg.WebServerPort != 8080 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.SampleInterval() != 18*time.Minute || cfg.RenderInterval() != 500*time.Millisecond {
		t.Errorf("intervals %s %s", cfg.SampleInterval(), cfg.RenderInterval())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "COLOR_DEPTH=24\n", "unknown config key"},
		{"bad number", "TELEMETRY_SENSOR_IDX=twelve\n", "TELEMETRY_SENSOR_IDX"},
		{"bad address", "BAROMETER_I2C_ADDR=0xZZ\n", "BAROMETER_I2C_ADDR"},
		{"bad source", "BAROMETER_SOURCE=gps\n", "invalid config"},
		{"bad sink", "DISPLAY_SINKS=console,hologram\n", "invalid config"},
		{"zero interval", "BAROMETER_SAMPLE_INTERVAL_MINUTES=0\n", "invalid config"},
		{"empty broker", "MQTT_BROKER=\n", "invalid config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bad.config", tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.config")); err == nil {
		t.Fatal("expected error")
	}
}

func TestLayoutDefaultsToBuiltIn(t *testing.T) {
	entries, err := Default().Layout()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(grid.DefaultLayout()) {
		t.Fatalf("got %d entries", len(entries))
	}
}

func TestLoadLayout(t *testing.T) {
	path := writeFile(t, "layout.toml", `
[[cell]]
identity = "Living Motion"
x = 6
y = 4

[[cell]]
identity = "Barometer"
x = 0
y = 0
`)
	cfg := Default()
	cfg.LayoutFile = path

	entries, err := cfg.Layout()
	if err != nil {
		t.Fatal(err)
	}
	want := []grid.Entry{{Identity: "Living Motion", X: 6, Y: 4}, {Identity: "Barometer", X: 0, Y: 0}}
	if len(entries) != len(want) {
		t.Fatalf("got %+v", entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
	if _, err := grid.NewRegistry(entries); err != nil {
		t.Fatalf("layout rejected: %v", err)
	}
}

func TestLoadLayoutEmpty(t *testing.T) {
	if _, err := LoadLayout(writeFile(t, "empty.toml", "# nothing\n")); err == nil {
		t.Fatal("expected error for empty layout")
	}
}
