package model

import "time"

type FileEntry struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	IsDir      bool      `json:"is_dir"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	SizeHuman  string    `json:"size_human,omitempty"`
	ModifiedAt time.Time `json:"modified_at"`
	Extension  string    `json:"extension,omitempty"`
}

type FileStat struct {
	FileEntry
	CreatedAt   time.Time `json:"created_at"`
	Permissions string    `json:"permissions"`
	MimeType    string    `json:"mime_type,omitempty"`
	IsSymlink   bool      `json:"is_symlink,omitempty"`
}

type DirectoryListData struct {
	CurrentPath string      `json:"current_path"`
	ParentPath  string      `json:"parent_path"`
	Items       []FileEntry `json:"items"`
}

type DirResult struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

type RenameResult struct {
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
	Name    string `json:"name"`
}

// Favorite is a well-known user directory offered as a shortcut.
type Favorite struct {
	Name string `json:"name"`
	Path string `json:"path"`
}
