package database

import (
	"context"
	"fmt"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// joinTable describes one side of a many-to-many relationship stored in a
// join table. Each side of a relationship rewrites only its own rows, so a
// link persists once both sides have been updated.
type joinTable struct {
	name         string
	ownerColumn  string
	targetColumn string
}

var (
	userVideogames          = joinTable{"user_videogames", "user_id", "videogame_id"}
	vendorVideogames        = joinTable{"vendor_videogames", "vendor_id", "videogame_id"}
	orderVideogames         = joinTable{"order_videogames", "order_id", "videogame_id"}
	challengeVideogames     = joinTable{"challenge_videogames", "challenge_id", "videogame_id"}
	challengeBadges         = joinTable{"challenge_badges", "challenge_id", "badge_id"}
	moderatorReports        = joinTable{"moderator_reports", "moderator_id", "report_id"}
	moderatorSupportTickets = joinTable{"moderator_support_tickets", "moderator_id", "support_ticket_id"}
)

// linkRow is a generic (owner, target) pair read from a join table or a
// child foreign key.
type linkRow struct {
	Owner  uint64
	Target uint64
}

// inverse returns the same table seen from the target side.
func (j joinTable) inverse() joinTable {
	return joinTable{name: j.name, ownerColumn: j.targetColumn, targetColumn: j.ownerColumn}
}

// targets returns the linked ids of every owner, keyed by owner id.
func (j joinTable) targets(ctx context.Context, db *gorm.DB, ownerIDs []uint64) (map[uint64]entity.IDs, error) {
	if len(ownerIDs) == 0 {
		return map[uint64]entity.IDs{}, nil
	}

	var rows []linkRow
	err := db.WithContext(ctx).
		Table(j.name).
		Select(fmt.Sprintf("%s AS owner, %s AS target", j.ownerColumn, j.targetColumn)).
		Where(j.ownerColumn+" IN ?", ownerIDs).
		Order(j.targetColumn).
		Scan(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to read "+j.name)
	}

	return groupLinks(rows), nil
}

// replace rewrites the rows of ownerID so that they match ids exactly.
func (j joinTable) replace(ctx context.Context, db *gorm.DB, ownerID uint64, ids entity.IDs) error {
	if err := j.deleteOwner(ctx, db, ownerID); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, map[string]any{j.ownerColumn: ownerID, j.targetColumn: id})
	}

	err := db.WithContext(ctx).
		Table(j.name).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(rows).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to write "+j.name)
	}

	return nil
}

// deleteOwner removes every row of ownerID.
func (j joinTable) deleteOwner(ctx context.Context, db *gorm.DB, ownerID uint64) error {
	err := db.WithContext(ctx).
		Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", j.name, j.ownerColumn), ownerID).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete from "+j.name)
	}

	return nil
}

// childRelation is a one-to-many relationship held by a foreign key column
// on the child table. The parent's collection is derived from it.
type childRelation struct {
	table    string
	fkColumn string
}

var (
	userReports        = childRelation{"reports", "user_id"}
	userSupportTickets = childRelation{"support_tickets", "user_id"}
	userOrders         = childRelation{"orders", "user_id"}
	userTransactions   = childRelation{"transactions", "user_id"}
	userBadges         = childRelation{"badges", "user_id"}
	categoryVideogames = childRelation{"videogames", "category_id"}
)

// children returns the child ids of every parent, keyed by parent id.
func (c childRelation) children(ctx context.Context, db *gorm.DB, parentIDs []uint64) (map[uint64]entity.IDs, error) {
	if len(parentIDs) == 0 {
		return map[uint64]entity.IDs{}, nil
	}

	var rows []linkRow
	err := db.WithContext(ctx).
		Table(c.table).
		Select(fmt.Sprintf("%s AS owner, id AS target", c.fkColumn)).
		Where(c.fkColumn+" IN ?", parentIDs).
		Order("id").
		Scan(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to read "+c.table)
	}

	return groupLinks(rows), nil
}

// detach clears the foreign key of every child of parentID.
func (c childRelation) detach(ctx context.Context, db *gorm.DB, parentID uint64) error {
	err := db.WithContext(ctx).
		Exec(fmt.Sprintf("UPDATE %s SET %s = NULL WHERE %s = ?", c.table, c.fkColumn, c.fkColumn), parentID).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to detach "+c.table)
	}

	return nil
}

func groupLinks(rows []linkRow) map[uint64]entity.IDs {
	grouped := make(map[uint64]entity.IDs, len(rows))
	for _, row := range rows {
		ids := grouped[row.Owner]
		ids.Add(row.Target)
		grouped[row.Owner] = ids
	}

	return grouped
}

// idsOf collects primary keys through the given accessor.
func idsOf[M any](models []M, id func(M) uint64) []uint64 {
	ids := make([]uint64, 0, len(models))
	for _, m := range models {
		ids = append(ids, id(m))
	}

	return ids
}
