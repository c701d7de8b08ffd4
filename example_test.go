package yamlite_test

import (
	"fmt"

	"github.com/yamlite/go-yamlite"
)

func ExampleUnmarshal() {
	doc := `
name: Alice
age: 30
active: true
`
	var result map[string]any
	if err := yamlite.Unmarshal([]byte(doc), &result); err != nil {
		panic(err)
	}

	fmt.Println(result["name"])
	fmt.Println(result["age"])
	fmt.Println(result["active"])
	// Output:
	// Alice
	// 30
	// true
}

func ExampleMarshal() {
	data := map[string]any{
		"name":   "Alice",
		"age":    30,
		"active": true,
		"tags":   []string{"admin", "dev"},
	}

	res, err := yamlite.Marshal(data)
	if err != nil {
		panic(err)
	}

	fmt.Println(string(res))
	// Output:
	// active: true
	// age: 30
	// name: "Alice"
	// tags: ["admin", "dev"]
}

func ExampleMarshal_structTags() {
	// Struct tags allow you to customize field names and behavior
	type Person struct {
		Name        string   `yamlite:"name"`
		Age         int      `yamlite:"age,omitempty"` // Omitted if zero
		Email       string   `yamlite:"email,omitempty"`
		SecretToken string   `yamlite:"-"` // Always skipped
		Tags        []string `yamlite:"tags,omitempty"`
	}

	person := Person{
		Name:        "Alice",
		SecretToken: "secret",
		Tags:        []string{"developer", "golang"},
	}

	res, err := yamlite.Marshal(person)
	if err != nil {
		panic(err)
	}

	fmt.Println(string(res))
	// Output:
	// name: "Alice"
	// tags: ["developer", "golang"]
}

func ExampleUnmarshal_structTags() {
	// Struct tags work for unmarshalling too - they map keys to struct fields
	type User struct {
		FirstName string `yamlite:"first_name"`
		LastName  string `yamlite:"last_name"`
		Age       int    `yamlite:"age"`
	}

	doc := `
first_name: "Alice"
last_name: "Smith"
age: 30
`

	var user User
	if err := yamlite.Unmarshal([]byte(doc), &user); err != nil {
		panic(err)
	}

	fmt.Printf("Name: %s %s, Age: %d\n", user.FirstName, user.LastName, user.Age)
	// Output:
	// Name: Alice Smith, Age: 30
}

func ExampleParse() {
	doc := `server:
    port: 8080
junk line
`
	res := yamlite.Parse([]byte(doc))
	for _, n := range res.Notes {
		fmt.Println(n)
	}

	port, _ := res.Value.Get("server")
	fmt.Println(yamlite.Plain(port))
	// Output:
	// line 2: indent: indent step of 4, expected 2
	// line 3: ignored: unrecognized line "junk line"
	// map[port:8080]
}

func ExampleToJSON() {
	out, err := yamlite.ToJSON([]byte("name: tracker\nitems:\n  - one\n  - 2"))
	if err != nil {
		panic(err)
	}

	fmt.Println(string(out))
	// Output:
	// {
	//   "name": "tracker",
	//   "items": [
	//     "one",
	//     2
	//   ]
	// }
}

func ExampleFromJSON() {
	out, err := yamlite.FromJSON([]byte(`{"obj": {"nested": true}, "empty": {}, "list": [1, "a", null]}`))
	if err != nil {
		panic(err)
	}

	fmt.Println(string(out))
	// Output:
	// obj:
	//   nested: true
	// empty: {}
	// list: [1, "a", null]
}
