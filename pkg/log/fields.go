package log

const (
	// Service
	FieldService = "service"

	// Run
	FieldRunID   = "run_id"
	FieldCommand = "command"
	FieldOutput  = "output"
	FieldWorkers = "workers"

	// Enumeration
	FieldWorker       = "worker"
	FieldRecordNumber = "record_number"
	FieldStart        = "start"
	FieldSteps        = "steps"
	FieldWritten      = "written"
	FieldSkipped      = "skipped"
	FieldElapsed      = "elapsed_ms"

	// Input
	FieldID      = "id"
	FieldProfile = "profile"
)
