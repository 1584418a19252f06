package model

// DataType classifies what kind of value a table cell holds. Multi-cell
// selections must be homogeneous in DataType (dates with dates, currency
// with currency); the selection layer enforces this.
type DataType string

const (
	TypeDate     DataType = "date"
	TypeNumber   DataType = "number"
	TypeCurrency DataType = "currency"
	TypeText     DataType = "text"
)

// Field names a selectable column in the issue table.
type Field string

const (
	FieldStartDate    Field = "startDate"
	FieldTargetDate   Field = "targetDate"
	FieldDueDate      Field = "dueDate"
	FieldBudget       Field = "budget"
	FieldStoryPoints  Field = "storyPoints"
	FieldTimeTracking Field = "timeTracking"
	FieldSlippage     Field = "slippage"
)

// SelectableFields lists the selectable columns in visual table order.
// Shift-range selection walks rows within one of these columns.
var SelectableFields = []Field{
	FieldStartDate,
	FieldTargetDate,
	FieldDueDate,
	FieldBudget,
	FieldStoryPoints,
	FieldTimeTracking,
	FieldSlippage,
}

// Type returns the data type of values in this column.
func (f Field) Type() DataType {
	switch f {
	case FieldStartDate, FieldTargetDate, FieldDueDate:
		return TypeDate
	case FieldBudget:
		return TypeCurrency
	case FieldStoryPoints, FieldTimeTracking, FieldSlippage:
		return TypeNumber
	default:
		return TypeText
	}
}

// Label returns the human-readable column header.
func (f Field) Label() string {
	switch f {
	case FieldStartDate:
		return "Start Date"
	case FieldTargetDate:
		return "Target Due"
	case FieldDueDate:
		return "Due Date"
	case FieldBudget:
		return "Budget"
	case FieldStoryPoints:
		return "Story Pts"
	case FieldTimeTracking:
		return "Time Track"
	case FieldSlippage:
		return "Slippage"
	default:
		return string(f)
	}
}

// Cell is one selectable (issue, field) unit in the table. Value holds the
// raw typed value (an ISO date string or a float64), DisplayValue the
// pre-formatted string shown in the row.
type Cell struct {
	IssueID      string
	Field        Field
	Value        any
	DataType     DataType
	DisplayValue string
}

// Same reports whether two cells address the same (issue, field) unit.
func (c Cell) Same(other Cell) bool {
	return c.IssueID == other.IssueID && c.Field == other.Field
}

// ID returns the composite cell identity string.
func (c Cell) ID() string {
	return c.IssueID + "-" + string(c.Field)
}

// FieldID composes the popover identity for a field in a given scope,
// e.g. "budget-global-project" or "status-<assigneeID>". At most one
// popover is open at a time, keyed by this string.
func FieldID(field, scope string) string {
	return field + "-" + scope
}

// GlobalScope is the scope token for the whole-project summary row.
const GlobalScope = "global-project"
