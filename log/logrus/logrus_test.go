package logrus

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/cacheengine"
)

func TestLogrusAdapter(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})
	l := LogrusLogger{E: logrus.NewEntry(base)}
	l.Warn("slow probe", cacheengine.Fields{"location": "127.0.0.1:11211"})

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("bad json %q: %v", buf.String(), err)
	}
	if rec["msg"] != "slow probe" || rec["location"] != "127.0.0.1:11211" || rec["level"] != "warning" {
		t.Fatalf("record = %v", rec)
	}
}
