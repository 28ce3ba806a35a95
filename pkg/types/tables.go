package types

// Standard table names for Pantry.GetTable.
const (
	ItemsTable   = "items"
	HistoryTable = "history"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	ItemsTable,
	HistoryTable,
}
