// Package accountstatement implements the transaction history query for
// coinhouse accounts.
package accountstatement
