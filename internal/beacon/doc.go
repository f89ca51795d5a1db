// Package beacon defines the three fixed beacons, their coordinates and the
// readings they report.
//
// Role binding is by identity: Kenobi and Sato provide the base circles for
// trilateration and Skywalker disambiguates between the two candidates. Arrival
// order never influences which beacon plays which role, and Arrange is the
// only way to turn a round's readings into a Set.
package beacon
