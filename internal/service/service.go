// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass in
// validated data, services apply business rules (credential checks,
// password hashing, cross-resource composition) and call repository
// methods. Each service depends on narrow repository interfaces so it
// can be tested against mocks.
package service
