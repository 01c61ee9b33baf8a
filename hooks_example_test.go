package hooks

import (
	"fmt"

	"github.com/AnatoleLucet/hooks/store"
)

func ExampleNewCell() {
	count := NewCell(0)
	fmt.Println(count.Read())

	count.Write(10)
	fmt.Println(count.Read())

	// Output:
	// 0
	// 10
}

func ExampleNewComputed() {
	count := NewCell(1)
	double := NewComputed(func() int {
		fmt.Println("doubling")
		return count.Read() * 2
	})
	plustwo := NewComputed(func() int {
		fmt.Println("adding")
		return double.Read() + 2
	})
	fmt.Println(count.Read())
	fmt.Println(double.Read())
	fmt.Println(plustwo.Read())

	count.Write(10)
	fmt.Println(count.Read())
	fmt.Println(double.Read())
	fmt.Println(plustwo.Read())

	// Output:
	// doubling
	// adding
	// 1
	// 2
	// 4
	// doubling
	// adding
	// 10
	// 20
	// 22
}

func ExampleNewList() {
	todos := NewList([]string{"write tests"})
	todos.Subscribe(func(items []string) {
		fmt.Println(items)
	})

	NewBatch(func() {
		todos.Push("ship it")
		todos.Push("celebrate")
	})
	todos.Shift()

	// Output:
	// [write tests ship it celebrate]
	// [ship it celebrate]
}

func ExampleNewStored() {
	s := store.NewMemory()
	s.Set("theme", `"dark"`)

	theme, err := NewStored(s, "theme", "light")
	if err != nil {
		panic(err)
	}
	fmt.Println(theme.Read())

	theme.Write("solarized")
	fmt.Println(s.Get("theme"))

	// Output:
	// dark
	// "solarized" true <nil>
}
