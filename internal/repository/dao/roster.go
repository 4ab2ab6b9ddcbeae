package dao

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type rosterFile struct {
	Students []Student `yaml:"students"`
}

// SampleRoster returns the roster the service ships with.
func SampleRoster() []Student {
	return []Student{
		{Roll: 101, Name: "Rohan", Branch: "CSE", Marks: []int{78, 67, 89}},
		{Roll: 102, Name: "Riyaa", Branch: "CSE", Marks: []int{88, 91, 76}},
		{Roll: 103, Name: "Suman", Branch: "ECE", Marks: []int{92, 81, 74}},
		{Roll: 104, Name: "Priya", Branch: "EEE", Marks: []int{65, 69, 72}},
		{Roll: 105, Name: "Kunal", Branch: "CSE", Marks: []int{91, 73, 84}},
		{Roll: 106, Name: "Meera", Branch: "ME", Marks: []int{58, 82, 55}},
		{Roll: 107, Name: "Ameet", Branch: "CSE", Marks: []int{78, 67, 89}},
		{Roll: 108, Name: "Diyaa", Branch: "EEE", Marks: []int{85, 81, 76}},
		{Roll: 109, Name: "Rohan", Branch: "ECE", Marks: []int{37, 87, 70}},
		{Roll: 110, Name: "Sriya", Branch: "EEE", Marks: []int{65, 66, 72}},
		{Roll: 111, Name: "Kusal", Branch: "ME", Marks: []int{88, 73, 84}},
		{Roll: 112, Name: "Manoj", Branch: "ME", Marks: []int{78, 73, 65}},
	}
}

// LoadRoster reads a YAML roster file of the form
//
//	students:
//	  - roll: 101
//	    name: Rohan
//	    branch: CSE
//	    marks: [78, 67, 89]
//
// An empty path yields SampleRoster.
func LoadRoster(path string) ([]Student, error) {
	if path == "" {
		return SampleRoster(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile -> %w", err)
	}

	var file rosterFile
	if err = yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal -> %w", err)
	}

	if err = ValidateRoster(file.Students); err != nil {
		return nil, fmt.Errorf("ValidateRoster -> %w", err)
	}

	return file.Students, nil
}

func ValidateRoster(students []Student) error {
	if len(students) == 0 {
		return ErrEmptyRoster
	}

	seen := make(map[int]bool, len(students))
	for i, s := range students {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("student #%d (roll %d): %w", i+1, s.Roll, err)
		}
		if seen[s.Roll] {
			return fmt.Errorf("roll %d: %w", s.Roll, ErrDuplicateRoll)
		}
		seen[s.Roll] = true
	}

	return nil
}
