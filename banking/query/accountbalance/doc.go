// Package accountbalance implements the balance query for coinhouse
// accounts, including the permission profile the viewer holds on it.
package accountbalance
