package types

// DecorType 定义装饰物的类型ID
// 装饰物没有生长阶段（始终视为成熟），但参与碰撞检测和健康视觉
type DecorType string

const (
	DecorGnome     DecorType = "gnome"
	DecorBirdbath  DecorType = "birdbath"
	DecorLantern   DecorType = "lantern"
	DecorBench     DecorType = "bench"
	DecorStonePath DecorType = "stonepath"
	DecorWindmill  DecorType = "windmill"
)

// LandmarkType 定义地标的类型ID
// 地标固定在地平线层，不参与碰撞检测，允许相互重叠
type LandmarkType string

const (
	LandmarkFountain LandmarkType = "fountain"
	LandmarkArchway  LandmarkType = "archway"
	LandmarkPond     LandmarkType = "pond"
	LandmarkGazebo   LandmarkType = "gazebo"
)
