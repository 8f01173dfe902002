package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ssargent/gs1kit/pkg/ai"
	"github.com/ssargent/gs1kit/pkg/gs1err"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const gs = "\x1d"

func TestParse_HappyPath(t *testing.T) {
	result, err := DefaultParser().Parse("(01)09501101530003(17)251231(10)ABC123")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Len())
	assert.Equal(t, []string{"01", "17", "10"}, result.Codes())
	assert.Equal(t, map[string]ai.Value{
		"01": ai.StringValue("09501101530003"),
		"17": ai.DateValue(2025, time.December, 31),
		"10": ai.StringValue("ABC123"),
	}, result.AsMap())
}

func TestParse_FormatsAgree(t *testing.T) {
	paren, err := StrictParser().Parse("(01)09501101530003(17)251231(10)ABC123")
	require.NoError(t, err)

	concat, err := StrictParser().Parse(gs + "0109501101530003" + "17251231" + "10ABC123")
	require.NoError(t, err)

	assert.Equal(t, paren.AsMap(), concat.AsMap())
	assert.Equal(t, paren.String(), concat.String())
}

func TestParse_TypedValues(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  map[string]ai.Value
	}{
		{
			name:  "dates",
			input: "(11)250101(13)250201(15)250301",
			want: map[string]ai.Value{
				"11": ai.DateValue(2025, time.January, 1),
				"13": ai.DateValue(2025, time.February, 1),
				"15": ai.DateValue(2025, time.March, 1),
			},
		},
		{
			name:  "counts",
			input: "(20)01(30)100(37)50",
			want: map[string]ai.Value{
				"20": ai.StringValue("01"),
				"30": ai.IntValue(100),
				"37": ai.IntValue(50),
			},
		},
		{
			name: "shipping container",
			input: "(00)106141411234567897" +
				"(02)09501101530003" +
				"(3302)125000" +
				"(3312)120000" +
				"(3322)080000" +
				"(3332)100000",
			want: map[string]ai.Value{
				"00":   ai.StringValue("106141411234567897"),
				"02":   ai.StringValue("09501101530003"),
				"3302": ai.DecimalValue("1250.00"),
				"3312": ai.DecimalValue("1200.00"),
				"3322": ai.DecimalValue("800.00"),
				"3332": ai.DecimalValue("1000.00"),
			},
		},
		{
			name:  "made to order",
			input: "(03)09501101530003(242)123456(241)CUST-PART-XYZ(22)BLUE-XLARGE",
			want: map[string]ai.Value{
				"03":  ai.StringValue("09501101530003"),
				"242": ai.StringValue("123456"),
				"241": ai.StringValue("CUST-PART-XYZ"),
				"22":  ai.StringValue("BLUE-XLARGE"),
			},
		},
		{
			name:  "locations",
			input: "(410)0614141123452(254)DOCK-A3(414)0614141123452",
			want: map[string]ai.Value{
				"410": ai.StringValue("0614141123452"),
				"254": ai.StringValue("DOCK-A3"),
				"414": ai.StringValue("0614141123452"),
			},
		},
		{
			name:  "measures",
			input: "(3145)000123(3102)001250(3100)000045",
			want: map[string]ai.Value{
				"3145": ai.DecimalValue("0.00123"),
				"3102": ai.DecimalValue("12.50"),
				"3100": ai.DecimalValue("45"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := StrictParser().Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.AsMap())
		})
	}
}

func TestParse_KnownGoodCorpus(t *testing.T) {
	corpus := []string{
		"(01)09501101530003(17)251231(10)ABC123",
		"(01)12345678901231(10)LOT42",
		"(01)00012345678905(17)240101",
		gs + "10ABC" + gs + "17251231",
		gs + "0109501101530003" + "3103001234" + "21SN-1",
		"(01)09501101530003(21)SN123(250)SN456",
	}

	for _, p := range []*Parser{DefaultParser(), StrictParser()} {
		for _, input := range corpus {
			_, err := p.Parse(input)
			assert.NoError(t, err, "%s: %q", p.Mode(), input)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		kind  gs1err.Kind
		ai    string
		pos   int
	}{
		{name: "empty", input: "", kind: gs1err.EmptyInput, pos: 0},
		{name: "unknown AI", input: "(99)123", kind: gs1err.UnknownAI, ai: "99", pos: 1},
		{name: "short GTIN", input: "(01)123", kind: gs1err.LengthMismatch, ai: "01", pos: 4},
		{name: "bad date", input: "(10)X(17)250230", kind: gs1err.InvalidDate, ai: "17", pos: 9},
		{name: "letters in count", input: "(30)1A", kind: gs1err.CharacterSetViolation, ai: "30", pos: 4},
		{name: "lower case lot", input: "(10)abc", kind: gs1err.CharacterSetViolation, ai: "10", pos: 4},
		{name: "single digit", input: "1", kind: gs1err.AIResolutionFailure, pos: 0},
		{name: "truncated expiry", input: "172512", kind: gs1err.TruncatedValue, ai: "17", pos: 2},
		{name: "unknown in concatenated", input: "99ABC" + gs, kind: gs1err.AIResolutionFailure, pos: 0},
		{name: "dangling separators", input: "10ABC" + gs + gs, kind: gs1err.AIResolutionFailure, pos: 6},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := DefaultParser().Parse(tc.input)
			require.Error(t, err)
			assert.Nil(t, result)

			var gerr *gs1err.Error
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, tc.kind, gerr.Kind)
			assert.Equal(t, tc.ai, gerr.AI)
			assert.Equal(t, tc.pos, gerr.Pos)
		})
	}
}

func TestParse_Duplicates(t *testing.T) {
	inputs := []struct {
		input string
		pos   int
	}{
		{input: "(10)A(10)B", pos: 9},
		{input: "(10)A(10)A", pos: 9},
		{input: gs + "10A" + gs + "10B", pos: 7},
		{input: "(01)09501101530003(17)251231(01)09501101530003", pos: 32},
	}

	for _, p := range []*Parser{DefaultParser(), StrictParser()} {
		for _, in := range inputs {
			_, err := p.Parse(in.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, gs1err.ErrDuplicateAI)

			var gerr *gs1err.Error
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, in.pos, gerr.Pos)
		}
	}
}

func TestParse_StrictOnlyChecks(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		kind  gs1err.Kind
		msg   string
	}{
		{name: "check digit", input: "(01)09501101530004", kind: gs1err.CheckDigitInvalid},
		{name: "GLN check digit", input: "(410)0614141123453", kind: gs1err.CheckDigitInvalid},
		{name: "max length", input: "(10)" + strings.Repeat("A", 25), kind: gs1err.LengthExceeded, msg: "exceeds max"},
		{name: "max length concatenated", input: gs + "10" + strings.Repeat("A", 25) + gs, kind: gs1err.LengthExceeded},
		{name: "leading separator", input: "10ABC" + gs + "17251231", kind: gs1err.MissingSeparator},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DefaultParser().Parse(tc.input)
			require.NoError(t, err)

			_, err = StrictParser().Parse(tc.input)
			require.Error(t, err)
			assert.Equal(t, tc.kind, gs1err.KindOf(err))
			if tc.msg != "" {
				assert.ErrorContains(t, err, tc.msg)
			}
		})
	}
}

func TestParse_StrictCheckDigitPositioned(t *testing.T) {
	_, err := StrictParser().Parse("(17)251231(01)09501101530004")
	require.Error(t, err)

	var gerr *gs1err.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, gs1err.CheckDigitInvalid, gerr.Kind)
	assert.Equal(t, "01", gerr.AI)
	assert.Equal(t, 14, gerr.Pos)
}

func TestParse_SeparatorHeuristic(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	letters := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	flagging := New(Config{SeparatorHeuristic: true})

	for i := 0; i < 200; i++ {
		n := 1 + rnd.Intn(10)
		var sb strings.Builder
		for j := 0; j < n; j++ {
			sb.WriteByte(letters[rnd.Intn(len(letters))])
		}

		input := "10" + sb.String() + "17251231"
		_, err := flagging.Parse(input)
		assert.ErrorIs(t, err, gs1err.ErrMissingSeparator, input)

		// off by default: the whole tail is the lot
		result, err := DefaultParser().Parse(input)
		require.NoError(t, err, input)
		lot, _ := result.Get("10")
		assert.Equal(t, sb.String()+"17251231", lot.String())
	}

	_, err := flagging.Parse("10ABC17251231")
	var gerr *gs1err.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, gs1err.MissingSeparator, gerr.Kind)
	assert.Equal(t, "10", gerr.AI)
	assert.Equal(t, 5, gerr.Pos)
}

func TestParse_LastVariableFieldEndsAtInput(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		code  string
		want  string
	}{
		{name: "lot ending like AI 20", input: gs + "0109501101530003" + "10LOT2024", code: "10", want: "LOT2024"},
		{name: "serial ending like a GTIN", input: gs + "0109501101530003" + "21SN4711012345", code: "21", want: "SN4711012345"},
	}

	heuristic := New(Config{Mode: Strict, SeparatorHeuristic: true})
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, p := range []*Parser{StrictParser(), DefaultParser(), heuristic} {
				result, err := p.Parse(tc.input)
				require.NoError(t, err)

				value, ok := result.Get(tc.code)
				require.True(t, ok)
				assert.Equal(t, tc.want, value.String())
			}
		})
	}
}

func TestParse_InputTooLong(t *testing.T) {
	p := New(Config{MaxInputLength: 20})

	_, err := p.Parse("(10)" + strings.Repeat("A", 17))
	assert.ErrorIs(t, err, gs1err.ErrInputTooLong)

	_, err = DefaultParser().Parse("(10)" + strings.Repeat("A", 10000))
	assert.ErrorIs(t, err, gs1err.ErrInputTooLong)
}

func TestParse_CustomRegistry(t *testing.T) {
	internal := ai.Spec{Code: "99", Title: "INTERNAL", Length: ai.Variable(30), CharSet: ai.Alphanumeric}

	t.Run("extended table", func(t *testing.T) {
		reg, err := ai.NewBuilder().Register(internal).Build()
		require.NoError(t, err)

		result, err := New(Config{Registry: reg}).Parse("(01)09501101530003(99)INTERNAL-1")
		require.NoError(t, err)
		v, err := result.Require("99")
		require.NoError(t, err)
		assert.Equal(t, ai.StringValue("INTERNAL-1"), v)
	})

	t.Run("table without defaults", func(t *testing.T) {
		reg, err := ai.NewBuilder().WithoutDefaults().Register(internal).Build()
		require.NoError(t, err)

		_, err = New(Config{Registry: reg}).Parse("(01)09501101530003")
		assert.ErrorIs(t, err, gs1err.ErrUnknownAI)
	})

	t.Run("override relaxes a standard AI", func(t *testing.T) {
		loose := ai.Spec{Code: "01", Title: "GTIN", Length: ai.Variable(14), CharSet: ai.Numeric}
		reg, err := ai.NewBuilder().Register(loose).Build()
		require.NoError(t, err)

		result, err := New(Config{Mode: Strict, Registry: reg}).Parse("(01)123")
		require.NoError(t, err)
		assert.True(t, result.Contains("01"))
	})
}

func TestResult_Lookup(t *testing.T) {
	result, err := DefaultParser().Parse("(01)09501101530003(10)LOT42")
	require.NoError(t, err)

	v, ok := result.Get("10")
	assert.True(t, ok)
	assert.Equal(t, ai.StringValue("LOT42"), v)

	_, ok = result.Get("17")
	assert.False(t, ok)
	assert.False(t, result.Contains("17"))

	_, err = result.Require("17")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "AI 17 not found")

	e, ok := result.Element("10")
	require.True(t, ok)
	assert.Equal(t, Element{Code: "10", Raw: "LOT42", Value: ai.StringValue("LOT42"), Pos: 22}, e)
}

func TestResult_CopiesAreIndependent(t *testing.T) {
	result, err := DefaultParser().Parse("(10)A(21)B")
	require.NoError(t, err)

	elements := result.Elements()
	elements[0].Code = "99"
	m := result.AsMap()
	delete(m, "10")

	assert.True(t, result.Contains("10"))
	assert.Equal(t, []string{"10", "21"}, result.Codes())
}

func TestResult_Rendering(t *testing.T) {
	result, err := DefaultParser().Parse(gs + "0109501101530003" + "17251231" + "10ABC123" + gs + "30100")
	require.NoError(t, err)

	assert.Equal(t, "(01)09501101530003(17)251231(10)ABC123(30)100", result.String())

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Equal(t, `{"01":"09501101530003","17":"2025-12-31","10":"ABC123","30":100}`, string(data))

	out, err := yaml.Marshal(result)
	require.NoError(t, err)

	var back map[string]string
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, map[string]string{
		"01": "09501101530003",
		"17": "2025-12-31",
		"10": "ABC123",
		"30": "100",
	}, back)

	text := string(out)
	assert.Less(t, strings.Index(text, `"17"`), strings.Index(text, `"10"`))
}

func TestParse_RandomGarbage(t *testing.T) {
	alphabet := "0123456789ABCXYZabc()-/ \x1d\x00"
	rnd := rand.New(rand.NewSource(42))
	parsers := []*Parser{DefaultParser(), StrictParser()}

	for i := 0; i < 5000; i++ {
		n := rnd.Intn(40)
		buf := make([]byte, n)
		for j := range buf {
			buf[j] = alphabet[rnd.Intn(len(alphabet))]
		}
		input := string(buf)

		for _, p := range parsers {
			result, err := p.Parse(input)
			if err == nil {
				require.NotNil(t, result)
				continue
			}

			assert.Nil(t, result)
			var gerr *gs1err.Error
			require.True(t, errors.As(err, &gerr), "%q: %v", input, err)
			assert.NotEqual(t, gs1err.Unknown, gerr.Kind, "%q", input)
			assert.NotEqual(t, gs1err.InvalidSpec, gerr.Kind, "%q", input)
			assert.GreaterOrEqual(t, gerr.Pos, 0, "%q", input)
			assert.LessOrEqual(t, gerr.Pos, len(input), "%q", input)
		}
	}
}

func TestParse_Concurrent(t *testing.T) {
	p := StrictParser()
	inputs := []string{
		"(01)09501101530003(17)251231(10)ABC123",
		gs + "10ABC" + gs + "17251231",
		"(01)09501101530004",
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				input := inputs[i%len(inputs)]
				_, err := p.Parse(input)
				if i%len(inputs) == 2 {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			}
		}()
	}
	wg.Wait()
}

type recordedParse struct {
	format, mode string
	codes        []string
	err          error
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedParse
}

func (f *fakeRecorder) RecordParse(format, mode string, codes []string, err error, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedParse{format: format, mode: mode, codes: codes, err: err})
}

func TestParse_RecordsMetrics(t *testing.T) {
	rec := &fakeRecorder{}
	p := New(Config{Mode: Strict, Metrics: rec})

	_, err := p.Parse("(01)09501101530003(10)A")
	require.NoError(t, err)
	_, err = p.Parse(gs + "10A" + gs + "10B")
	require.Error(t, err)

	require.Len(t, rec.calls, 2)
	assert.Equal(t, recordedParse{format: "parenthesis", mode: "strict", codes: []string{"01", "10"}}, rec.calls[0])
	assert.Equal(t, "concatenated", rec.calls[1].format)
	assert.Nil(t, rec.calls[1].codes)
	assert.ErrorIs(t, rec.calls[1].err, gs1err.ErrDuplicateAI)
}

func TestParse_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := New(Config{Logger: logger})

	_, err := p.Parse("(10)ABC")
	require.NoError(t, err)
	_, err = p.Parse("(10)abc")
	require.Error(t, err)
	_, err = p.Parse("(10)A(10)B")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"component":"parser"`)
	assert.Contains(t, out, `"msg":"parsed payload"`)
	assert.Contains(t, out, `"msg":"parse failed"`)
	assert.Contains(t, out, `"kind":"character_set_violation","structural":false`)
	assert.Contains(t, out, `"kind":"duplicate_ai","structural":true`)
}

func TestParse_NoLogger(t *testing.T) {
	p := New(Config{})
	assert.NotPanics(t, func() {
		_, _ = p.Parse("(10)ABC")
		_, _ = p.Parse("")
	})
}

func TestMode(t *testing.T) {
	for _, m := range []Mode{Strict, Lenient} {
		text, err := m.MarshalText()
		require.NoError(t, err)

		var back Mode
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, m, back)
	}

	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, Lenient, m)

	_, err = ParseMode("pedantic")
	assert.ErrorContains(t, err, "invalid compliance mode")

	assert.Equal(t, Strict, StrictParser().Mode())
	assert.Equal(t, Lenient, DefaultParser().Mode())
}
