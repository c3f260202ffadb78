package bassboost

import (
	"strconv"

	"github.com/opd-ai/effectvts/effect"
	"github.com/opd-ai/effectvts/factory"
	"github.com/opd-ai/effectvts/interfaces"
)

// Case is one (implementation, strength) pair of the sweep.
type Case struct {
	Name        string
	FactoryName string
	Factory     interfaces.IFactory
	Descriptor  effect.Descriptor
	Strength    int32
}

// Cases builds the cross product of pairs and values. Cases of one
// descriptor are contiguous and keep the order of values.
func Cases(pairs []factory.FactoryDescriptor, values []int32) []Case {
	cases := make([]Case, 0, len(pairs)*len(values))
	for _, pair := range pairs {
		for _, v := range values {
			cases = append(cases, Case{
				Name:        CaseName(pair.Descriptor, v),
				FactoryName: pair.Name,
				Factory:     pair.Factory,
				Descriptor:  pair.Descriptor,
				Strength:    v,
			})
		}
	}
	return cases
}

// CaseName returns the identifier of a case. Every byte that is not an ASCII
// letter or digit is replaced with '_', so the result is usable as a subtest
// name and a report key.
func CaseName(desc effect.Descriptor, strength int32) string {
	name := "Implementor_" + desc.Common.Implementor +
		"_name_" + desc.Common.Name +
		"_UUID_" + desc.Common.ID.UUID.String() +
		"_strength_" + strconv.FormatInt(int64(strength), 10)

	b := []byte(name)
	for i, c := range b {
		if !isAlnum(c) {
			b[i] = '_'
		}
	}
	return string(b)
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
