package fuzztests

import (
	"path/filepath"
	"testing"

	"c0c/internal/testkit"
)

const maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	f.Add([]byte{})
	f.Add([]byte("fn main() -> void { }\n"))
	f.Add([]byte("let g: double = 1.5;\nfn main() -> int { return g as int; }\n"))
	f.Add([]byte("fn main() -> void { putstr(\"\\x41\\n\"); putchar('\\t'); }\n"))
}

// addTestdataSeeds adds the program of every Markdown case, accepted or not.
func addTestdataSeeds(f *testing.F) {
	files, err := filepath.Glob(filepath.Join("..", "driver", "testdata", "*.md"))
	if err != nil {
		return
	}
	for _, file := range files {
		cases, err := testkit.LoadCases(file)
		if err != nil {
			f.Fatalf("seed corpus: %v", err)
		}
		for _, tc := range cases {
			f.Add(clampSeed([]byte(tc.Source)))
		}
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
