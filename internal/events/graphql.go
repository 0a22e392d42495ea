package events

import "time"

// GraphQLStart is emitted before executing a GraphQL operation.
type GraphQLStart struct {
	Query         string
	OperationName string
	OperationType string
}

// GraphQLFinish is emitted after executing a GraphQL operation.
type GraphQLFinish struct {
	Query         string
	OperationName string
	OperationType string
	Errors        []error
	Duration      time.Duration
}

// TypeResolved is emitted each time a record's discriminator is mapped onto a
// registered object type. TypeName is empty when Found is false.
type TypeResolved struct {
	AbstractType  string
	Discriminator string
	TypeName      string
	Found         bool
}
