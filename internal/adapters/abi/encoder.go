package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"
)

var bigIntType = reflect.TypeOf(&big.Int{})

// Encoder converts command line literals into constructor arguments
type Encoder struct{}

// NewEncoder creates a new constructor argument encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// ParseABI parses an artifact's ABI JSON
func (e *Encoder) ParseABI(raw json.RawMessage) (*abi.ABI, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("[]")
	}
	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return &parsed, nil
}

// ConstructorSignature renders the constructor inputs, e.g. "(string name, uint256 supply)"
func (e *Encoder) ConstructorSignature(parsed *abi.ABI) string {
	inputs := lo.Map(parsed.Constructor.Inputs, func(arg abi.Argument, _ int) string {
		if arg.Name == "" {
			return arg.Type.String()
		}
		return arg.Type.String() + " " + arg.Name
	})
	return "(" + strings.Join(inputs, ", ") + ")"
}

// ConstructorArgs converts args to the Go values go-ethereum packs for the
// constructor inputs of parsed
func (e *Encoder) ConstructorArgs(parsed *abi.ABI, args []string) ([]interface{}, error) {
	inputs := parsed.Constructor.Inputs
	if len(args) != len(inputs) {
		return nil, fmt.Errorf("constructor expects %d argument(s) %s, got %d",
			len(inputs), e.ConstructorSignature(parsed), len(args))
	}

	values := make([]interface{}, len(args))
	for i, input := range inputs {
		v, err := convert(input.Type, args[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = strconv.Itoa(i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		values[i] = v
	}
	return values, nil
}

// Encode packs args against the constructor, returning the bytes appended to
// creation code
func (e *Encoder) Encode(parsed *abi.ABI, args []string) ([]byte, error) {
	values, err := e.ConstructorArgs(parsed, args)
	if err != nil {
		return nil, err
	}
	return parsed.Pack("", values...)
}

func convert(t abi.Type, raw string) (interface{}, error) {
	switch t.T {
	case abi.StringTy:
		return raw, nil

	case abi.BoolTy:
		return strconv.ParseBool(raw)

	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("invalid address %q", raw)
		}
		return common.HexToAddress(raw), nil

	case abi.IntTy, abi.UintTy:
		return convertInteger(t, raw)

	case abi.BytesTy:
		return decodeHex(raw)

	case abi.FixedBytesTy:
		b, err := decodeHex(raw)
		if err != nil {
			return nil, err
		}
		if len(b) > t.Size {
			return nil, fmt.Errorf("value is %d bytes, max %d", len(b), t.Size)
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	case abi.SliceTy, abi.ArrayTy:
		return convertList(t, raw)

	default:
		return nil, fmt.Errorf("unsupported constructor argument type %s", t.String())
	}
}

func convertInteger(t abi.Type, raw string) (interface{}, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(raw), 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", raw)
	}

	if t.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return nil, fmt.Errorf("%s out of range for uint%d", raw, t.Size)
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		minimum := new(big.Int).Neg(limit)
		if n.Cmp(minimum) < 0 || n.Cmp(limit) >= 0 {
			return nil, fmt.Errorf("%s out of range for int%d", raw, t.Size)
		}
	}

	goType := t.GetType()
	if goType == bigIntType {
		return n, nil
	}
	v := reflect.New(goType).Elem()
	if t.T == abi.UintTy {
		v.SetUint(n.Uint64())
	} else {
		v.SetInt(n.Int64())
	}
	return v.Interface(), nil
}

// convertList parses a JSON array literal, e.g. ["0xabc...", "0xdef..."] or [1, 2]
func convertList(t abi.Type, raw string) (interface{}, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("expected a JSON array: %w", err)
	}
	if t.T == abi.ArrayTy && len(items) != t.Size {
		return nil, fmt.Errorf("expected %d elements, got %d", t.Size, len(items))
	}

	var list reflect.Value
	if t.T == abi.ArrayTy {
		list = reflect.New(t.GetType()).Elem()
	} else {
		list = reflect.MakeSlice(t.GetType(), len(items), len(items))
	}

	for i, item := range items {
		elem, err := convert(*t.Elem, literal(item))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		list.Index(i).Set(reflect.ValueOf(elem))
	}
	return list.Interface(), nil
}

// literal unquotes JSON strings and keeps numbers, bools and arrays verbatim
func literal(item json.RawMessage) string {
	var s string
	if err := json.Unmarshal(item, &s); err == nil {
		return s
	}
	return string(item)
}

func decodeHex(raw string) ([]byte, error) {
	b, err := hexutil.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid hex value %q: %w", raw, err)
	}
	return b, nil
}
