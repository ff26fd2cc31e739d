package parser

import (
	"testing"
)

func FuzzPythonExtractor(f *testing.F) {
	f.Add([]byte(`import pytest

@pytest.fixture()
def db() -> Dict[str, List[int]]:
    return {}

def test_x(db: Dict[str, List[int]], other, *args, **kwargs):
    pass
`))
	f.Add([]byte("def broken(:\n"))
	f.Add([]byte(""))

	p := NewParser(NewGrammarLoader())
	f.Fuzz(func(t *testing.T, data []byte) {
		mod, err := p.ParseSource("fuzz.py", data)
		if err != nil {
			return
		}
		if mod.Unparsable && len(mod.Functions) != 0 {
			t.Fatalf("unparsable module must not expose functions")
		}
	})
}
