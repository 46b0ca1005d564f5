package model

type BatchItemResult struct {
	Path    string `json:"path"`
	Target  string `json:"target,omitempty"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// BatchOutcome summarizes a multi-item operation. Processed+Failed always
// equals the number of inputs and Success is true only when Failed is zero.
type BatchOutcome struct {
	Success   bool              `json:"success"`
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	BatchID   string            `json:"batch_id"`
	TrashSlot string            `json:"trash_slot,omitempty"`
	Results   []BatchItemResult `json:"results"`
}

func NewBatchOutcome(batchID string, capacity int) BatchOutcome {
	return BatchOutcome{
		BatchID: batchID,
		Results: make([]BatchItemResult, 0, capacity),
	}
}

func (o *BatchOutcome) Succeeded(path string, target string) {
	o.Processed++
	o.Results = append(o.Results, BatchItemResult{Path: path, Target: target, Success: true})
	o.Success = o.Failed == 0
}

func (o *BatchOutcome) Fail(path string, message string) {
	o.Failed++
	o.Results = append(o.Results, BatchItemResult{Path: path, Message: message})
	o.Success = false
}

// Finish settles Success for batches that never recorded an item.
func (o *BatchOutcome) Finish() {
	o.Success = o.Failed == 0
}
