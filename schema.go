package logtable

// ColumnType is a dialect-neutral column type; backends map it to SQL.
type ColumnType string

const (
	ColumnIncrements ColumnType = "increments"
	ColumnTimestamp  ColumnType = "timestamp"
	ColumnString     ColumnType = "string"
	ColumnInteger    ColumnType = "integer"
)

// Column describes a single column of a table.
type Column struct {
	Name     string
	Type     ColumnType
	Size     int
	Nullable bool
}

// Schema is an ordered list of columns.
type Schema struct {
	Columns []Column
}

// Column names of the log table.
const (
	ColID       = "id"
	ColTime     = "time"
	ColData     = "data"
	ColRank     = "rank"
	ColLevel    = "level"
	ColCategory = "category"
)

const (
	DataSize     = 4096
	LevelSize    = 12
	CategorySize = 64
)

// LogSchema returns the fixed schema of the log table. Every call returns an equal value.
func LogSchema() Schema {
	return Schema{Columns: []Column{
		{Name: ColID, Type: ColumnIncrements},
		{Name: ColTime, Type: ColumnTimestamp},
		{Name: ColData, Type: ColumnString, Size: DataSize},
		{Name: ColRank, Type: ColumnInteger},
		{Name: ColLevel, Type: ColumnString, Size: LevelSize},
		{Name: ColCategory, Type: ColumnString, Size: CategorySize},
	}}
}
