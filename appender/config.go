package appender

import (
	"maps"
	"reflect"

	"github.com/sagarc03/logtable"
	"github.com/sagarc03/logtable/database"
	"github.com/sagarc03/logtable/layout"
)

// DefaultTable is the table written to when Config.Table is empty.
const DefaultTable = "log"

// ConnectionSource says where the appender's connection comes from: an already
// open Live handle or Params to open one with.
type ConnectionSource interface {
	isConnectionSource()
}

// Live is an open connection owned by the caller. Close on the appender leaves it open.
type Live struct {
	Conn logtable.Conn
}

// Params describes a connection the appender opens itself and closes on Close.
type Params struct {
	database.Config
}

func (Live) isConnectionSource()   {}
func (Params) isConnectionSource() {}

// Config configures an Appender.
type Config struct {
	// Connection is required.
	Connection ConnectionSource
	// Table defaults to DefaultTable.
	Table string
	// Layout selects the layout for the data column; nil means pass-through.
	Layout *layout.Spec
	// AdditionalFields are merged into every row and win over the standard columns.
	AdditionalFields map[string]any
	// Transactional runs each insert attempt in its own transaction when the
	// connection implements logtable.Transactor.
	Transactional bool
}

// LayoutResolver provides layouts by type name.
type LayoutResolver interface {
	Resolve(typ string, spec layout.Spec) (logtable.Layout, error)
	PassThrough() logtable.Layout
}

func (c Config) hasConnection() bool {
	switch src := c.Connection.(type) {
	case Live:
		return !isNilConn(src.Conn)
	case *Live:
		return src != nil && !isNilConn(src.Conn)
	case Params:
		return true
	case *Params:
		return src != nil
	default:
		return false
	}
}

// isNilConn reports whether conn is nil, including a nil pointer stored in the interface.
func isNilConn(conn logtable.Conn) bool {
	if conn == nil {
		return true
	}
	v := reflect.ValueOf(conn)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

func copyFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}
