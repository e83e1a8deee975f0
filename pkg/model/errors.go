package model

import "fmt"

// InvalidCourseCodeError is returned when a course's department has no lecturer roster to draw from
type InvalidCourseCodeError struct {
	Course     string
	Department string
}

func (err InvalidCourseCodeError) Error() string {
	return fmt.Sprintf("course \"%v\" belongs to department \"%v\", which has no lecturers", err.Course, err.Department)
}

type EmptyDomainError struct {
	Course string
}

func (err EmptyDomainError) Error() string {
	return fmt.Sprintf("course \"%v\" has an empty domain", err.Course)
}

type MissingDomainError struct {
	Course string
}

func (err MissingDomainError) Error() string {
	return fmt.Sprintf("no domain was provided for course \"%v\"", err.Course)
}

type DuplicateCourseError struct {
	Course string
}

func (err DuplicateCourseError) Error() string {
	return fmt.Sprintf("course \"%v\" is listed more than once", err.Course)
}

type InvalidInputError struct {
	Err error
}

func (err InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %v", err.Err)
}

func (err InvalidInputError) Unwrap() error {
	return err.Err
}
