package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

func TestParserZipsHeaderWithRows(t *testing.T) {
	p := &Parser{}
	rows, err := p.Parse([]byte("carNumber,model,price\n12가1234,쏘나타,1500\n34나5678,아반떼,900\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].Line)
	assert.Equal(t, "12가1234", rows[0].Get("carNumber"))
	assert.Equal(t, "쏘나타", rows[0].Get("model"))
	assert.Equal(t, 2, rows[1].Line)
	assert.Equal(t, "900", rows[1].Get("price"))
}

func TestParserShortAndLongRows(t *testing.T) {
	p := &Parser{}
	rows, err := p.Parse([]byte("a,b,c\n1\n1,2,3,4\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, map[string]string{"a": "1", "b": "", "c": ""}, rows[0].Fields)
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": "3"}, rows[1].Fields)
}

func TestParserSkipsBlankRows(t *testing.T) {
	p := &Parser{}
	rows, err := p.Parse([]byte("a,b\n1,2\n , \n\n3,4\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "3", rows[1].Get("a"))
	assert.Equal(t, 4, rows[1].Line)
}

func TestParserLinesFollowFilePosition(t *testing.T) {
	p := &Parser{}
	rows, err := p.Parse([]byte("a,b\n1,2\n\n3,4\n,\n5,6\n"))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 1, rows[0].Line)
	assert.Equal(t, 3, rows[1].Line)
	assert.Equal(t, 5, rows[2].Line)

	// a multi-line quoted value occupies several file lines
	rows, err = p.Parse([]byte("a,memo\n1,\"x\ny\"\n2,z\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[1].Line)
}

func TestParserReportsRowOfMalformedRecord(t *testing.T) {
	p := &Parser{}
	_, err := p.Parse([]byte("a,b\n1,2\n\n3,x\"y\n"))
	require.Error(t, err)

	var ie *Error
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ErrStructuralParse, ie.Kind)
	assert.Equal(t, 3, ie.Row)
}

func TestParserQuotedFields(t *testing.T) {
	p := &Parser{}
	rows, err := p.Parse([]byte("a,memo\n1,\"hello, \"\"world\"\"\nnext\"\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "hello, \"world\"\nnext", rows[0].Get("memo"))
}

func TestParserStripsBOM(t *testing.T) {
	p := &Parser{}
	rows, err := p.Parse(append([]byte{0xEF, 0xBB, 0xBF}, []byte("name,phoneNumber\n홍길동,010-1111-2222\n")...))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "홍길동", rows[0].Get("name"))
}

func TestParserDecodesEUCKR(t *testing.T) {
	encoded, err := korean.EUCKR.NewEncoder().String("carNumber,model\n12가1234,쏘나타\n")
	require.NoError(t, err)

	p := &Parser{}
	rows, err := p.Parse([]byte(encoded))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "12가1234", rows[0].Get("carNumber"))
	assert.Equal(t, "쏘나타", rows[0].Get("model"))
}

func TestParserStructuralErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cause error
	}{
		{"empty input", "", ErrMissingHeader},
		{"blank header", " , \n1,2\n", ErrMissingHeader},
		{"duplicate header", "a,a\n1,2\n", ErrDuplicateHeader},
		{"unterminated quote", "a,b\n\"1,2\n", nil},
		{"bare quote", "a,b\n1,x\"y\n", nil},
		{"undecodable bytes", "carNumber,manufacturer\n\xff\xfe\x80\x81,x\n", ErrInvalidEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Parser{}
			rows, err := p.Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, rows)
			assert.True(t, errors.Is(err, ErrStructuralParse))
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}
}

func TestParserHeaderOnly(t *testing.T) {
	p := &Parser{}
	rows, err := p.Parse([]byte("a,b\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParserMaxRows(t *testing.T) {
	p := &Parser{MaxRows: 2}
	_, err := p.Parse([]byte("a\n1\n2\n3\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyRows)
	assert.ErrorIs(t, err, ErrStructuralParse)

	rows, err := p.Parse([]byte("a\n1\n2\n"))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
