package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldSuccess   = "success"
	FieldBackend   = "backend"
	FieldRecords   = "records"
	FieldCategory  = "category"
	FieldCard      = "card"
	FieldSymbol    = "symbol"
	FieldYear      = "year"
	FieldMonth     = "month"
	FieldRefDate   = "ref_date"
	FieldReport    = "report"
	FieldSink      = "sink"
	FieldPath      = "path"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentLedger    = "ledger"
	ComponentReport    = "report"
	ComponentRates     = "rates"
	ComponentDashboard = "dashboard"
	ComponentSink      = "sink"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentCache     = "cache"
)

// Operations defines standard operation names
const (
	OpLoad    = "load"
	OpImport  = "import"
	OpParse   = "parse"
	OpGroup   = "group"
	OpRank    = "rank"
	OpSearch  = "search"
	OpLookup  = "lookup"
	OpRender  = "render"
	OpPublish = "publish"
)
