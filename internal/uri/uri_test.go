package uri

import "testing"

func TestGenerateFileURI(t *testing.T) {
	tests := []struct {
		name     string
		rootPath string
		docPath  string
		line     int
		want     string
	}{
		{
			name:     "simple path",
			rootPath: "/Users/test/project",
			docPath:  "config/app.json",
			line:     3,
			want:     "file:///Users/test/project/config/app.json#L3",
		},
		{
			name:     "leading slash in document path",
			rootPath: "/Users/test/project",
			docPath:  "/config/app.json",
			line:     1,
			want:     "file:///Users/test/project/config/app.json#L1",
		},
		{
			name:     "trailing slash on root",
			rootPath: "/srv/data/",
			docPath:  "a.json",
			line:     0,
			want:     "file:///srv/data/a.json",
		},
		{
			name:     "path with spaces",
			rootPath: "/Users/test/my project",
			docPath:  "my data/test file.json",
			line:     12,
			want:     "file:///Users/test/my%20project/my%20data/test%20file.json#L12",
		},
		{
			name:     "path with special chars",
			rootPath: "/Users/test/project",
			docPath:  "data/test (copy).json",
			line:     0,
			want:     "file:///Users/test/project/data/test%20%28copy%29.json",
		},
		{
			name:     "windows separators",
			rootPath: "C:\\work",
			docPath:  "sub\\a.json",
			line:     2,
			want:     "file:///C:/work/sub/a.json#L2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateFileURI(tt.rootPath, tt.docPath, tt.line)
			if got != tt.want {
				t.Errorf("GenerateFileURI() = %q, want %q", got, tt.want)
			}
		})
	}
}
