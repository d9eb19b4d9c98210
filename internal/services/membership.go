package services

import (
	"context"
	"log"

	"github.com/watchrebel/backend/internal/apperror"
	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/internal/repositories"
	"gorm.io/gorm"
)

// MembershipService maintains the "at most one active membership per
// (user, media) pair" invariant across the watchlist and all of the user's
// custom lists. The check -> evict -> insert sequence runs inside a single
// transaction.
type MembershipService struct {
	lists  repositories.ListRepository
	fanout *FanoutNotifier // optional
}

// NewMembershipService creates a MembershipService. fanout may be nil.
func NewMembershipService(lists repositories.ListRepository, fanout *FanoutNotifier) *MembershipService {
	return &MembershipService{lists: lists, fanout: fanout}
}

// AddToWatchlist inserts a watchlist entry, rejecting duplicates.
func (s *MembershipService) AddToWatchlist(userID uint, req models.AddMediaRequest) (*models.WatchlistItem, error) {
	if _, err := s.lists.GetWatchlistItem(userID, req.MediaID, req.MediaType); err == nil {
		return nil, apperror.Conflict(apperror.CodeAlreadyInWatchlist, "media already on the watchlist")
	} else if err != gorm.ErrRecordNotFound {
		return nil, apperror.Internal(err)
	}

	item := &models.WatchlistItem{
		UserID:    userID,
		MediaID:   req.MediaID,
		MediaType: req.MediaType,
		Title:     req.Title,
		PosterURL: req.PosterURL,
	}
	if err := s.lists.CreateWatchlistItem(item); err != nil {
		return nil, apperror.Internal(err)
	}
	return item, nil
}

// AddToList inserts a list entry after evicting any prior membership of the
// same (user, media) pair. Adding to a list always removes an extant
// watchlist entry for the item (promotion semantics). Emits the
// added_to_list fan-out event after the transaction commits.
func (s *MembershipService) AddToList(ctx context.Context, userID, listID uint, req models.AddMediaRequest) (*models.ListItem, error) {
	list, err := s.lists.GetListByID(listID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperror.NotFound(apperror.CodeListNotFound, "list")
		}
		return nil, apperror.Internal(err)
	}
	if list.UserID != userID {
		return nil, apperror.Forbidden(apperror.CodeForbidden, "list belongs to another user")
	}
	if list.MediaType != req.MediaType {
		return nil, apperror.Validation(apperror.CodeInvalidMediaType, "list holds "+list.MediaType+" items only")
	}

	item := &models.ListItem{
		ListID:    listID,
		MediaID:   req.MediaID,
		MediaType: req.MediaType,
		Title:     req.Title,
		PosterURL: req.PosterURL,
	}

	err = s.lists.WithTx(func(tx repositories.ListTx) error {
		existing, err := tx.FindMembership(userID, req.MediaID, req.MediaType)
		if err != nil {
			return apperror.Internal(err)
		}
		if existing != nil {
			if existing.ListID == listID {
				return apperror.Conflict(apperror.CodeAlreadyInList, "media already in this list")
			}
			// silent eviction from the previous list
			if err := tx.DeleteMembership(existing.ID); err != nil {
				return apperror.Internal(err)
			}
		}
		if err := tx.DeleteWatchlistMembership(userID, req.MediaID, req.MediaType); err != nil {
			return apperror.Internal(err)
		}
		return tx.InsertItem(item)
	})
	if err != nil {
		return nil, err
	}

	if s.fanout != nil {
		media := ActivityMedia{MediaID: req.MediaID, MediaType: req.MediaType, Title: req.Title}
		if _, err := s.fanout.NotifyFriends(ctx, userID, ActivityAddedToList, media); err != nil {
			log.Printf("added_to_list fan-out for user %d failed: %v", userID, err)
		}
	}
	return item, nil
}

// RemoveFromList deletes a list entry by id, scoped to the list's owner.
func (s *MembershipService) RemoveFromList(userID, listID, itemID uint) error {
	list, err := s.lists.GetListByID(listID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperror.NotFound(apperror.CodeListNotFound, "list")
		}
		return apperror.Internal(err)
	}
	if list.UserID != userID {
		return apperror.Forbidden(apperror.CodeForbidden, "list belongs to another user")
	}
	deleted, err := s.lists.DeleteListItem(listID, itemID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !deleted {
		return apperror.NotFound(apperror.CodeNotFound, "list entry")
	}
	return nil
}

// RemoveFromWatchlist deletes a watchlist entry by id, scoped to its owner.
func (s *MembershipService) RemoveFromWatchlist(userID, itemID uint) error {
	deleted, err := s.lists.DeleteWatchlistItem(userID, itemID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !deleted {
		return apperror.NotFound(apperror.CodeNotFound, "watchlist entry")
	}
	return nil
}
