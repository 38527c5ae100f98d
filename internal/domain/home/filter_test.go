package home

import (
	"reflect"
	"testing"

	"pet-adoption/internal/domain/pets"
)

func catalogFixture() []pets.WithShelter {
	retriever := "Golden Retriever"
	tabby := "Tabby"
	return []pets.WithShelter{
		{Pet: pets.Pet{Name: "Rex", Species: "Dog", Breed: &retriever}},
		{Pet: pets.Pet{Name: "Mia", Species: "Cat", Breed: &tabby}},
	}
}

func names(items []pets.WithShelter) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestFilter(t *testing.T) {
	catalog := catalogFixture()

	cases := []struct {
		name    string
		q       string
		species string
		want    []string
	}{
		{"sin filtros", "", "", []string{"Rex", "Mia"}},
		{"substring en nombre", "re", "", []string{"Rex"}},
		{"substring en raza", "tab", "", []string{"Mia"}},
		{"substring en especie", "dog", "", []string{"Rex"}},
		{"case-insensitive", "REX", "", []string{"Rex"}},
		{"especie exacta", "", "Cat", []string{"Mia"}},
		{"especie case-insensitive", "", "cat", []string{"Mia"}},
		{"conjuncion q+especie sin match", "re", "Cat", []string{}},
		{"conjuncion q+especie con match", "mi", "Cat", []string{"Mia"}},
		{"sin resultados", "zzz", "", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := names(Filter(catalog, tc.q, tc.species))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Filter(q=%q, species=%q) = %v, want %v", tc.q, tc.species, got, tc.want)
			}
		})
	}
}

func TestFilter_BreedNil(t *testing.T) {
	catalog := []pets.WithShelter{
		{Pet: pets.Pet{Name: "Rex", Species: "Dog"}},
	}
	if got := Filter(catalog, "retriever", ""); len(got) != 0 {
		t.Fatalf("expected no match against nil breed, got %v", names(got))
	}
}

func TestSpeciesList_DistinctFirstSeenOrder(t *testing.T) {
	catalog := []pets.WithShelter{
		{Pet: pets.Pet{Name: "Rex", Species: "Dog"}},
		{Pet: pets.Pet{Name: "Mia", Species: "Cat"}},
		{Pet: pets.Pet{Name: "Toby", Species: "Dog"}},
	}

	want := []string{"Dog", "Cat"}
	if got := SpeciesList(catalog); !reflect.DeepEqual(got, want) {
		t.Fatalf("SpeciesList = %v, want %v", got, want)
	}
}
