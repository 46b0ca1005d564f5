package model

type CreateDirectoryRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

type RenameRequest struct {
	Path    string `json:"path"`
	NewName string `json:"new_name"`
}

type MoveRequest struct {
	Sources     []string `json:"sources"`
	Destination string   `json:"destination"`
}

type DeleteRequest struct {
	Paths []string `json:"paths"`
}

type AllowedRootsRequest struct {
	Roots []string `json:"roots"`
}
