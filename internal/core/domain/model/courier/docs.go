// Package courier contains the courier aggregate. Couriers are the vehicles
// of route optimization: one optimizer vehicle per selected courier, labelled
// by courier ID.
package courier
