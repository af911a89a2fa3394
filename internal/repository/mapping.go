package repository

import (
	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository/dao"
)

func filterToDao(f domain.ListFilter) dao.Filter {
	return dao.Filter{
		CompetitionID: f.CompetitionID,
		UniversityID:  f.UniversityID,
		SiteID:        f.SiteID,
	}
}

func siteDaoToDomain(s dao.Site) domain.Site {
	return domain.Site{
		ID:            s.ID,
		CompetitionID: s.CompetitionID,
		UniversityID:  s.UniversityID,
		Name:          s.Name,
		Capacity:      s.Capacity,
	}
}

func sitesDaoToDomain(sites []dao.Site) []domain.Site {
	out := make([]domain.Site, len(sites))
	for i, s := range sites {
		out[i] = siteDaoToDomain(s)
	}
	return out
}

func competitionDaoToDomain(c dao.Competition) domain.Competition {
	return domain.Competition{
		ID:                 c.ID,
		Name:               c.Name,
		Code:               c.Code,
		Region:             c.Region,
		EarlyRegDeadline:   c.EarlyRegDeadline,
		GeneralRegDeadline: c.GeneralRegDeadline,
		StartDate:          c.StartDate,
		Information:        c.Information,
		Sites:              sitesDaoToDomain(c.Sites),
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func competitionDomainToDao(c domain.Competition) dao.Competition {
	sites := make([]dao.Site, len(c.Sites))
	for i, s := range c.Sites {
		sites[i] = dao.Site{
			ID:            s.ID,
			CompetitionID: s.CompetitionID,
			UniversityID:  s.UniversityID,
			Name:          s.Name,
			Capacity:      s.Capacity,
		}
	}

	return dao.Competition{
		ID:                 c.ID,
		Name:               c.Name,
		Code:               c.Code,
		Region:             c.Region,
		EarlyRegDeadline:   c.EarlyRegDeadline,
		GeneralRegDeadline: c.GeneralRegDeadline,
		StartDate:          c.StartDate,
		Information:        c.Information,
		Sites:              sites,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func studentDaoToDomain(p dao.Participant) domain.StudentInfo {
	return domain.StudentInfo{
		ID:              p.ID,
		CompetitionID:   p.CompetitionID,
		UserID:          p.UserID,
		UniversityID:    p.UniversityID,
		Name:            p.User.Name,
		Email:           p.User.Email,
		ICPCEligible:    p.ICPCEligible,
		Level:           domain.CompetitionLevel(p.Level),
		BoersenEligible: p.BoersenEligible,
		DegreeYear:      p.DegreeYear,
		DegreeField:     p.DegreeField,
		IsRemote:        p.IsRemote,
		PreferredSiteID: p.PreferredSiteID,
		TeamID:          p.TeamID,
		Bio:             p.Bio,
		CreatedAt:       p.CreatedAt,
	}
}

func studentsDaoToDomain(ps []dao.Participant) []domain.StudentInfo {
	out := make([]domain.StudentInfo, len(ps))
	for i, p := range ps {
		out[i] = studentDaoToDomain(p)
	}
	return out
}

func studentDomainToDao(s domain.StudentInfo) dao.Participant {
	return dao.Participant{
		ID:              s.ID,
		CompetitionID:   s.CompetitionID,
		UserID:          s.UserID,
		UniversityID:    s.UniversityID,
		ICPCEligible:    s.ICPCEligible,
		Level:           string(s.Level),
		BoersenEligible: s.BoersenEligible,
		DegreeYear:      s.DegreeYear,
		DegreeField:     s.DegreeField,
		IsRemote:        s.IsRemote,
		PreferredSiteID: s.PreferredSiteID,
		TeamID:          s.TeamID,
		Bio:             s.Bio,
	}
}

func staffDaoToDomain(s dao.Staff) domain.StaffInfo {
	return domain.StaffInfo{
		ID:            s.ID,
		CompetitionID: s.CompetitionID,
		UserID:        s.UserID,
		UniversityID:  s.UniversityID,
		Name:          s.User.Name,
		Email:         s.User.Email,
		Role:          domain.CompetitionUserRole(s.Role),
		SiteID:        s.SiteID,
		Access:        domain.StaffAccess(s.Access),
		Bio:           s.Bio,
		CreatedAt:     s.CreatedAt,
	}
}

func staffListDaoToDomain(ss []dao.Staff) []domain.StaffInfo {
	out := make([]domain.StaffInfo, len(ss))
	for i, s := range ss {
		out[i] = staffDaoToDomain(s)
	}
	return out
}

func staffDomainToDao(s domain.StaffInfo) dao.Staff {
	return dao.Staff{
		ID:            s.ID,
		CompetitionID: s.CompetitionID,
		UserID:        s.UserID,
		Role:          string(s.Role),
		UniversityID:  s.UniversityID,
		SiteID:        s.SiteID,
		Access:        string(s.Access),
		Bio:           s.Bio,
	}
}

func teamDaoToDomain(t dao.Team) domain.Team {
	return domain.Team{
		ID:            t.ID,
		CompetitionID: t.CompetitionID,
		UniversityID:  t.UniversityID,
		Name:          t.Name,
		Level:         domain.CompetitionLevel(t.Level),
		Status:        domain.TeamStatus(t.Status),
		SiteID:        t.SiteID,
		PendingName:   t.PendingName,
		PendingSiteID: t.PendingSiteID,
		Seat:          t.Seat,
		Members:       studentsDaoToDomain(t.Members),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func teamDomainToDao(t domain.Team) dao.Team {
	return dao.Team{
		ID:            t.ID,
		CompetitionID: t.CompetitionID,
		UniversityID:  t.UniversityID,
		Name:          t.Name,
		Level:         string(t.Level),
		Status:        string(t.Status),
		SiteID:        t.SiteID,
		PendingName:   t.PendingName,
		PendingSiteID: t.PendingSiteID,
		Seat:          t.Seat,
	}
}
