// Package product models producer products under moderation.
//
// A product enters the marketplace as PENDING and is moved exactly once by an
// administrator, to APPROVED or to DECLINED with a reason. Pending products are
// presented grouped by producer (see PendingGroup and Regroup).
package product
