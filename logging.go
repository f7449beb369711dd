package ebsreaper

import (
	"bytes"
	"fmt"
	"io"

	"github.com/inconshreveable/log15"
)

// timeFormat puts a comma before the milliseconds.
const timeFormat = "2006-01-02 15:04:05,000"

var levelNames = map[log15.Lvl]string{
	log15.LvlCrit:  "CRITICAL",
	log15.LvlError: "ERROR",
	log15.LvlWarn:  "WARNING",
	log15.LvlInfo:  "INFO",
	log15.LvlDebug: "DEBUG",
}

// LineFormat returns a log15 Format that renders each record as
//
//	2020-08-12 15:04:05,000 - INFO - Deleted vol-0abc in us-east-1
//
// Any context pairs on the record are appended after the message as
// key=value.
func LineFormat() log15.Format {
	return log15.FormatFunc(func(r *log15.Record) []byte {
		buf := &bytes.Buffer{}
		fmt.Fprintf(buf, "%s - %s - %s", r.Time.Format(timeFormat), levelName(r.Lvl), r.Msg)
		for i := 0; i+1 < len(r.Ctx); i += 2 {
			fmt.Fprintf(buf, " %v=%v", r.Ctx[i], r.Ctx[i+1])
		}
		buf.WriteByte('\n')
		return buf.Bytes()
	})
}

func levelName(lvl log15.Lvl) string {
	if name, ok := levelNames[lvl]; ok {
		return name
	}
	return lvl.String()
}

// NewLogger returns a log15 Logger writing LineFormat lines to w.
// Records below lvl are dropped.
func NewLogger(w io.Writer, lvl log15.Lvl) log15.Logger {
	l := log15.New()
	l.SetHandler(
		log15.LvlFilterHandler(
			lvl,
			log15.StreamHandler(w, LineFormat()),
		),
	)
	return l
}
