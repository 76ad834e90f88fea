package main

import (
	"fmt"
	"os"

	"github.com/aglyzov/go-patricia/patricia"
)

func main() {
	t := patricia.New[int]()
	t.Insert("cat", 1)
	t.Insert("car", 2)
	t.Insert("dog", 3)
	t.Insert("cats", 4)
	t.Insert("日本", 5)
	//t.Insert("", 0)

	t.DebugDump(os.Stdout)

	fmt.Printf("find(cat)   -> %v\n", must(t.Find("cat")))
	fmt.Printf("prefix(ca)  -> %v\n", t.ValuesWithPrefix("ca"))
	fmt.Printf("prefix()    -> %v\n", t.ValuesWithPrefix(""))

	println("------")

	t.Remove("cat")
	t.Remove("cats")
	t.DebugDump(os.Stdout)

	fmt.Printf("stats       -> %v\n", t.Stats())

	data, err := t.Marshal(patricia.CBORCodec[int]{})
	if err != nil {
		panic(err)
	}
	fmt.Printf("snapshot    -> %d bytes %x\n", len(data), data)

	t2, err := patricia.Unmarshal[int](data, patricia.CBORCodec[int]{})
	if err != nil {
		panic(err)
	}
	t2.Iter("", func(word string, val int) bool {
		fmt.Printf("%s\t%d\n", word, val)
		return true
	})
}

func must(val int, ok bool) interface{} {
	if !ok {
		return "(absent)"
	}
	return val
}
