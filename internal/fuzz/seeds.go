package fuzztests

import "testing"

const maxSeedBytes = 64 << 10 // 64 KiB

var languageSeeds = []string{
	"",
	"x = 'hello'\n",
	"x = \"it's\"\n",
	"b = b'\\x00\\xff'\n",
	"r = r'raw\\n'\n",
	"f1 = f'{value}'\n",
	"f2 = f'{value!r:>{width}}'\n",
	"f3 = f'{ value  =  }'\n",
	"f4 = f'''{\n    value  # trailing\n}'''\n",
	"doc = '''\nmodule docstring\n'''\n",
	"pair = 'one' \"two\"\n",
	"nested = f\"{ {k: v for k, v in items} }\"\n",
	"broken = 'unterminated\n",
	"deep = f'{a:{b:{c:{d}}}}'\n",
	"u = u'legacy'\n",
	"mixed = rb'\\x41' F'{x}'\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range languageSeeds {
		f.Add(clampSeed([]byte(seed)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
