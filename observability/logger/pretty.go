package logger

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

//nolint:gochecknoglobals // static palette shared by all pretty encoders
var levelColors = map[zapcore.Level]*color.Color{
	zapcore.DebugLevel:  color.New(color.FgCyan),
	zapcore.InfoLevel:   color.New(color.FgGreen),
	zapcore.WarnLevel:   color.New(color.FgYellow),
	zapcore.ErrorLevel:  color.New(color.FgRed, color.Bold),
	zapcore.DPanicLevel: color.New(color.FgRed, color.Bold),
	zapcore.PanicLevel:  color.New(color.FgRed, color.Bold),
	zapcore.FatalLevel:  color.New(color.FgMagenta, color.Bold),
}

//nolint:gochecknoglobals // static styles
var (
	timeColor  = color.New(color.Faint)
	nameColor  = color.New(color.FgBlue)
	fieldColor = color.New(color.FgHiBlack)
)

// prettyEncoder renders entries as a coloured header line followed by the
// entry fields as indented JSON.
type prettyEncoder struct {
	zapcore.Encoder
	pool buffer.Pool
}

func newPrettyEncoder(cfg zapcore.EncoderConfig) *prettyEncoder {
	return &prettyEncoder{
		Encoder: zapcore.NewJSONEncoder(cfg),
		pool:    buffer.NewPool(),
	}
}

func newPrettyLogger(cfg *zap.Config) *zap.Logger {
	core := zapcore.NewCore(newPrettyEncoder(cfg.EncoderConfig), zapcore.AddSync(os.Stdout), cfg.Level)
	return zap.New(core, zap.ErrorOutput(zapcore.AddSync(os.Stderr)))
}

// Clone keeps derived loggers on the pretty encoder.
func (e *prettyEncoder) Clone() zapcore.Encoder {
	return &prettyEncoder{Encoder: e.Encoder.Clone(), pool: e.pool}
}

func (e *prettyEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	jsonBuf, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}
	defer jsonBuf.Free()

	var payload map[string]any
	if unmarshalErr := json.Unmarshal(jsonBuf.Bytes(), &payload); unmarshalErr != nil {
		out := e.pool.Get()
		_, _ = out.Write(jsonBuf.Bytes())
		return out, nil
	}

	out := e.pool.Get()
	out.AppendString(prettyHeader(entry))
	out.AppendByte('\n')

	if body := prettyFields(payload); body != "" {
		out.AppendString(body)
		out.AppendByte('\n')
	}

	return out, nil
}

func prettyHeader(entry zapcore.Entry) string {
	ts := entry.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString(timeColor.Sprint("[" + ts.Format(time.DateTime) + "]"))
	b.WriteByte(' ')
	if c, ok := levelColors[entry.Level]; ok {
		b.WriteString(c.Sprint(entry.Level.CapitalString()))
	} else {
		b.WriteString(entry.Level.CapitalString())
	}
	if entry.LoggerName != "" {
		b.WriteByte(' ')
		b.WriteString(nameColor.Sprint(entry.LoggerName))
	}
	if entry.Message != "" {
		b.WriteByte(' ')
		b.WriteString(entry.Message)
	}
	return b.String()
}

// prettyFields drops the keys already shown in the header and indents the rest.
func prettyFields(payload map[string]any) string {
	for _, k := range []string{timeKey, levelKey, messageKey, nameKey} {
		delete(payload, k)
	}
	if len(payload) == 0 {
		return ""
	}

	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		raw, err := json.MarshalIndent(payload[k], "  ", "  ")
		if err != nil {
			continue
		}
		lines = append(lines, "  "+fieldColor.Sprint(k+":")+" "+string(raw))
	}
	return strings.Join(lines, "\n")
}
