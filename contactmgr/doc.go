// Package contactmgr provides the concrete contact.Manager resource
// models named in spec §4.1:
//
//   - EVL  — Effective Volume Limit: a flat residual-volume ledger, no
//     queueing delay.
//   - PriorityEVL / BudgetedPriorityEVL — EVL with per-priority booking,
//     charging a bundle's volume against every priority at or below its
//     own (the charging scheme spec §9 documents as the one this
//     reimplementation follows, out of two that coexist in the source).
//   - QD   — Queue Delay: same volume ledger as EVL, but the earliest
//     usable contact start is pushed forward by the booked queue's
//     drain time.
//   - ETO  — Earliest Transmission Opportunity: identical admission math
//     to QD, except the residual volume is only ever changed by an
//     external ManualEnqueue/ManualDequeue call; ScheduleTx never
//     commits on its own.
//   - SEG  — Segmentation: a contact built from contiguous rate/delay
//     segments, with a free-interval list standing in for "residual
//     volume" so that capacity can be reclaimed mid-contact.
//
// All of them satisfy contact.Manager and contact.OriginalVolumer, and
// ETO also satisfies contact.ManualQueuer.
package contactmgr
