package model

import "time"

type OperationKind string

const (
	OpListDir   OperationKind = "LIST_DIR"
	OpCreateDir OperationKind = "CREATE_DIR"
	OpRename    OperationKind = "RENAME"
	OpMove      OperationKind = "MOVE"
	OpDelete    OperationKind = "DELETE"
	OpUndo      OperationKind = "UNDO"
)

// Reversible reports whether the undo engine knows how to reverse k.
func (k OperationKind) Reversible() bool {
	switch k {
	case OpCreateDir, OpRename, OpMove, OpDelete:
		return true
	}
	return false
}

func (k OperationKind) Valid() bool {
	return k.Reversible() || k == OpListDir || k == OpUndo
}

type OperationStatus string

const (
	StatusSuccess OperationStatus = "SUCCESS"
	StatusFailure OperationStatus = "FAILURE"
)

// OperationRecord is one journal row. Empty optional fields are stored as NULL.
//
// For MOVE, DstPath is the destination directory. For RENAME and CREATE_DIR it
// is the full resulting path. For DELETE, SrcPath is the original location and
// TrashSlot names the slot the item went into.
type OperationRecord struct {
	ID        int64           `json:"id" db:"id"`
	Timestamp time.Time       `json:"timestamp" db:"occurred_at"`
	Kind      OperationKind   `json:"action" db:"action"`
	SrcPath   string          `json:"src_path,omitempty" db:"src_path"`
	DstPath   string          `json:"dst_path,omitempty" db:"dst_path"`
	Status    OperationStatus `json:"status" db:"status"`
	Message   string          `json:"message,omitempty" db:"message"`
	BatchID   string          `json:"batch_id,omitempty" db:"batch_id"`
	TrashSlot string          `json:"trash_slot,omitempty" db:"trash_slot"`
}

type UndoResult struct {
	Success       bool          `json:"success"`
	Action        OperationKind `json:"action"`
	ItemsRestored int           `json:"items_restored"`
	Message       string        `json:"message"`
}
