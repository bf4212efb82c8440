// Package ledger contains the core types of the coinhouse banking ledger:
// self-validating value objects (PersonaID, CoinhouseTag, GoldAmount,
// TransactionReason), the account and transaction model, and the repository
// contracts that storage engines implement.
//
// Everything in this package is an immutable value. Accounts are mutated
// copy-on-write: each mutating method returns a new snapshot which is then
// persisted wholesale through AccountRepository.SaveAccount, guarded by an
// optimistic version check.
package ledger
