package evaluating

import (
	"math/big"
	"strings"
	"sync"
	"testing"

	"github.com/spacemeshos/bits/packet"
	"github.com/spacemeshos/bits/parsing"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) *packet.Packet {
	t.Helper()
	p, err := parsing.Parse(input)
	require.NoError(t, err)
	return p
}

func TestSumVersions(t *testing.T) {
	tests := []struct {
		input string
		sum   uint64
	}{
		{"D2FE28", 6},
		{"38006F45291200", 9},
		{"EE00D40C823060", 14},
		{"8A004A801A8002F478", 16},
		{"620080001611562C8802118E34", 12},
		{"C0015000016115A2E0802F182340", 23},
		{"A0016C880162017C3686B18A3D4780", 31},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			require.Equal(t, tc.sum, SumVersions(parse(t, tc.input)))
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value int64
	}{
		{"literal", "D2FE28", 2021},
		{"sum", "C200B40A82", 3},
		{"product", "04005AC33890", 54},
		{"minimum", "880086C3E88112", 7},
		{"maximum", "CE00C43D881120", 9},
		{"less-than", "D8005AC2A8F0", 1},
		{"not greater-than", "F600BC2D8F", 0},
		{"not equal", "9C005AC2F8F0", 0},
		{"equal", "9C0141080250320F1802104A08", 1},
		{"length-prefixed less-than", "38006F45291200", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)

			v, err := Evaluate(parse(t, tc.input))
			req.NoError(err)
			req.Zero(big.NewInt(tc.value).Cmp(v), "got %v", v)
		})
	}
}

func TestEvaluate_Operators(t *testing.T) {
	lit := func(v int64) *packet.Packet { return packet.NewLiteral(0, v) }
	op := packet.NewOperator

	tests := []struct {
		name  string
		p     *packet.Packet
		value int64
	}{
		{"empty sum", op(0, packet.TypeSum), 0},
		{"single product", op(0, packet.TypeProduct, lit(7)), 7},
		{"product with zero", op(0, packet.TypeProduct, lit(7), lit(0), lit(3)), 0},
		{"single minimum", op(0, packet.TypeMinimum, lit(4)), 4},
		{"minimum", op(0, packet.TypeMinimum, lit(4), lit(2), lit(9)), 2},
		{"maximum", op(0, packet.TypeMaximum, lit(4), lit(2), lit(9)), 9},
		{"greater-than", op(0, packet.TypeGreaterThan, lit(5), lit(4)), 1},
		{"greater-than equal", op(0, packet.TypeGreaterThan, lit(5), lit(5)), 0},
		{"less-than equal", op(0, packet.TypeLessThan, lit(5), lit(5)), 0},
		{"equal-to", op(0, packet.TypeEqualTo, lit(5), lit(5)), 1},
		{"nested", op(0, packet.TypeSum,
			op(0, packet.TypeProduct, lit(3), lit(4)),
			op(0, packet.TypeEqualTo, op(0, packet.TypeMaximum, lit(1), lit(2)), lit(2)),
		), 13},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)

			v, err := Evaluate(tc.p)
			req.NoError(err)
			req.Zero(big.NewInt(tc.value).Cmp(v), "got %v", v)
		})
	}
}

func TestEvaluate_ArbitraryPrecision(t *testing.T) {
	req := require.New(t)

	big64 := &packet.Packet{TypeID: packet.TypeLiteral, Body: &packet.Literal{Value: new(big.Int).Lsh(big.NewInt(1), 63)}}
	p := packet.NewOperator(0, packet.TypeProduct, big64, big64, packet.NewLiteral(0, 4))

	v, err := Evaluate(p)
	req.NoError(err)
	req.Equal(new(big.Int).Lsh(big.NewInt(1), 128).String(), v.String())

	sum := packet.NewOperator(0, packet.TypeSum, big64, big64)
	v, err = Evaluate(sum)
	req.NoError(err)
	req.Equal("18446744073709551616", v.String())
}

func TestEvaluate_ResultIsFresh(t *testing.T) {
	req := require.New(t)

	p := parse(t, "D2FE28")
	v, err := Evaluate(p)
	req.NoError(err)
	v.SetInt64(0)

	v, err = Evaluate(p)
	req.NoError(err)
	req.Equal(int64(2021), v.Int64())
}

func TestEvaluate_EmptySubpackets(t *testing.T) {
	for _, typeID := range []packet.TypeID{packet.TypeProduct, packet.TypeMinimum, packet.TypeMaximum} {
		t.Run(typeID.String(), func(t *testing.T) {
			req := require.New(t)

			p := packet.NewOperator(0, typeID)
			p.Offset = 12
			_, err := Evaluate(p)

			var errEmpty EmptySubpacketsError
			req.ErrorAs(err, &errEmpty)
			req.Equal(typeID, errEmpty.TypeID)
			req.Equal(uint(12), errEmpty.Offset)
		})
	}
}

func TestEvaluate_WrongArity(t *testing.T) {
	for _, typeID := range []packet.TypeID{packet.TypeGreaterThan, packet.TypeLessThan, packet.TypeEqualTo} {
		for _, n := range []int{0, 1, 3} {
			subs := make([]*packet.Packet, n)
			for i := range subs {
				subs[i] = packet.NewLiteral(0, int64(i))
			}
			p := packet.NewOperator(0, typeID, subs...)

			_, err := Evaluate(p)
			var errArity WrongArityError
			require.ErrorAs(t, err, &errArity)
			require.Equal(t, typeID, errArity.TypeID)
			require.Equal(t, n, errArity.Count)
		}
	}
}

func TestEvaluate_InvalidTypeID(t *testing.T) {
	tests := []struct {
		name string
		p    *packet.Packet
	}{
		{"operator body under literal type", packet.NewOperator(0, packet.TypeLiteral, packet.NewLiteral(0, 1))},
		{"literal body under operator type", &packet.Packet{TypeID: packet.TypeSum, Body: &packet.Literal{Value: big.NewInt(1)}}},
		{"out of range type", packet.NewOperator(0, packet.TypeID(9), packet.NewLiteral(0, 1))},
		{"missing body", &packet.Packet{TypeID: packet.TypeSum}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Evaluate(tc.p)
			var errType InvalidTypeIDError
			require.ErrorAs(t, err, &errType)
			require.Equal(t, tc.p.TypeID, errType.TypeID)
		})
	}
}

func TestEvaluate_ErrorPath(t *testing.T) {
	req := require.New(t)

	// 8A004A801A8002F478 nests minimum operators down to a literal; replace
	// the literal under the innermost operator with nothing.
	p := parse(t, "8A004A801A8002F478")
	inner := p.Children()[0].Children()[0]
	inner.Body.(*packet.Operator).Subpackets = nil

	_, err := Evaluate(p)
	var errEmpty EmptySubpacketsError
	req.ErrorAs(err, &errEmpty)
	req.Equal(inner.Offset, errEmpty.Offset)
	req.Equal(2, strings.Count(err.Error(), "subpacket 1: "))
	req.True(strings.HasPrefix(err.Error(), "minimum operator at bit 0, subpacket 1: minimum operator at bit "))
}

func TestEvaluate_Concurrent(t *testing.T) {
	req := require.New(t)

	p := parse(t, "9C0141080250320F1802104A08")

	var wg sync.WaitGroup
	values := make([]*big.Int, 16)
	sums := make([]uint64, 16)
	errs := make([]error, 16)
	for i := range values {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			values[i], errs[i] = Evaluate(p)
			sums[i] = SumVersions(p)
		}(i)
	}
	wg.Wait()

	for i := range values {
		req.NoError(errs[i])
		req.Equal(int64(1), values[i].Int64())
		req.Equal(uint64(20), sums[i])
	}
}

var samples = []string{
	"D2FE28",
	"38006F45291200",
	"EE00D40C823060",
	"8A004A801A8002F478",
	"620080001611562C8802118E34",
	"C0015000016115A2E0802F182340",
	"A0016C880162017C3686B18A3D4780",
	"C200B40A82",
	"04005AC33890",
	"880086C3E88112",
	"CE00C43D881120",
	"D8005AC2A8F0",
	"F600BC2D8F",
	"9C005AC2F8F0",
	"9C0141080250320F1802104A08",
}

func requireVersionSumProperty(t *testing.T, root *packet.Packet) {
	t.Helper()
	root.Walk(func(p *packet.Packet, _ int) bool {
		want := uint64(p.Version)
		for _, child := range p.Children() {
			want += SumVersions(child)
		}
		sum := SumVersions(p)
		require.Equal(t, want, sum)
		require.LessOrEqual(t, sum, uint64(7*p.Count()))
		return true
	})
}

func TestSumVersions_Property(t *testing.T) {
	for _, input := range samples {
		t.Run(input, func(t *testing.T) {
			requireVersionSumProperty(t, parse(t, input))
		})
	}

	t.Run("wide", func(t *testing.T) {
		subs := make([]*packet.Packet, 2047)
		for i := range subs {
			subs[i] = packet.NewLiteral(uint8(i%8), int64(i))
		}
		root := packet.NewOperator(7, packet.TypeSum, subs...)
		requireVersionSumProperty(t, root)
		// 255 full cycles of 0..7 plus 0..6, and the root.
		require.Equal(t, uint64(255*28+21+7), SumVersions(root))
	})

	t.Run("deep", func(t *testing.T) {
		root := packet.NewLiteral(7, 1)
		for i := 0; i < 500; i++ {
			root = packet.NewOperator(7, packet.TypeMaximum, root)
		}
		require.Equal(t, uint64(7*501), SumVersions(root))
		require.Equal(t, uint64(7*root.Count()), SumVersions(root))
		requireVersionSumProperty(t, root)
	})
}
